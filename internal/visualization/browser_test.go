package visualization

import (
	"slices"
	"testing"
)

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{"linux", "xdg-open", []string{"/tmp/report/index.html"}, false},
		{"darwin", "open", []string{"/tmp/report/index.html"}, false},
		{"windows", "cmd", []string{"/c", "start", "", "/tmp/report/index.html"}, false},
		{"plan9", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := openCommand(tt.goos, "/tmp/report/index.html")
			if (err != nil) != tt.wantErr {
				t.Fatalf("openCommand() error = %v, wantErr %v", err, tt.wantErr)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if !slices.Equal(args, tt.wantArgs) {
				t.Errorf("args = %q, want %q", args, tt.wantArgs)
			}
		})
	}
}
