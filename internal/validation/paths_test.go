package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"empty path", "", true},
		{"simple filename", "process.bpmn", false},
		{"relative path", "data/process.bpmn", false},
		{"path traversal attempt", "../../../etc/passwd", true},
		{"path traversal in middle", "data/../../etc/passwd", true},
		{"hidden path traversal", "data/../../../etc/passwd", true},
		{"dot file", ".gitignore", false},
		{"current directory", ".", false},
		{"nested relative", "./data/process.bpmn", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFileExtension(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		allowed []string
		wantErr bool
	}{
		{"bpmn file allowed", "process.bpmn", []string{".bpmn"}, false},
		{"uppercase extension", "process.BPMN", []string{".bpmn"}, false},
		{"multiple allowed", "graph.xml", []string{".bpmn", ".xml"}, false},
		{"not allowed", "process.txt", []string{".bpmn"}, true},
		{"no extension", "process", []string{".bpmn"}, true},
		{"nested path", "data/process.bpmn", []string{".bpmn"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileExtension(tt.path, tt.allowed)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
