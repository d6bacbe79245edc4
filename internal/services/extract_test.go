package services

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractDOCXText(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Senior Backend Engineer with </w:t></w:r><w:r><w:t>Python and Go</w:t></w:r></w:p>
  </w:body>
</w:document>`

	extractor := NewTextExtractor(1 << 20)
	text, err := extractor.ExtractText(buildDOCX(t, docXML), "resume.docx")

	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Senior Backend Engineer with Python and Go")
}

func TestExtractTextDOCXParagraphBreaks(t *testing.T) {
	docXML := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>first</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>second</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	extractor := NewTextExtractor(1 << 20)
	text, err := extractor.ExtractText(buildDOCX(t, docXML), "resume.docx")

	require.NoError(t, err)
	assert.NotContains(t, text, "firstsecond")
	assert.Contains(t, text, "first")
	assert.Contains(t, text, "second")
}

func TestExtractTextUnsupportedExtension(t *testing.T) {
	extractor := NewTextExtractor(1 << 20)

	_, err := extractor.ExtractText([]byte("plain text"), "resume.txt")
	assert.Error(t, err)
}

func TestExtractTextTooLarge(t *testing.T) {
	extractor := NewTextExtractor(10)

	_, err := extractor.ExtractText(make([]byte, 11), "resume.pdf")
	assert.Error(t, err)
}

func TestExtractTextCorruptDOCX(t *testing.T) {
	extractor := NewTextExtractor(1 << 20)

	_, err := extractor.ExtractText([]byte("not a zip archive"), "resume.docx")
	assert.Error(t, err)
}
