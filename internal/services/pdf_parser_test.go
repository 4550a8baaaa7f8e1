package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"talentflow/recruitment-api/internal/errs"
)

func TestExtractTextRejectsNonPDF(t *testing.T) {
	parser := NewPDFParserService()

	for _, path := range []string{"cv.docx", "cv.txt", "cv"} {
		_, err := parser.ExtractText(path)
		assert.ErrorIs(t, err, errs.ErrUnsupportedFormat, path)
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	parser := NewPDFParserService()

	_, err := parser.ExtractText("/nonexistent/path/cv.pdf")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips blank lines and edge whitespace",
			input: "  Line one  \n\n\n   Line two\n   \nLine three  ",
			want:  "Line one\nLine two\nLine three",
		},
		{
			name:  "empty input",
			input: "   \n\n  ",
			want:  "",
		},
		{
			name:  "already clean",
			input: "Line one\nLine two",
			want:  "Line one\nLine two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}
