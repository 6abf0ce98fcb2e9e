package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHTMLText(t *testing.T) {
	page := `<?xml version="1.0" encoding="utf-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>ignored</title><style>p { color: red }</style></head>
<body>
  <h2>第1章   开端</h2>
  <p>第一段
     继续。</p>
  <p>第二段<br/>换行</p>
  <div><span>内联</span> 文本</div>
</body>
</html>`

	var out strings.Builder
	require.NoError(t, writeHTMLText(&out, []byte(page)))

	want := "第1章 开端\n第一段 继续。\n第二段\n换行\n内联文本\n"
	assert.Equal(t, want, out.String())
}
