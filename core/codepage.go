package core

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// 只支持单字节代码页，DBCS (ANSI_932 等) 不在范围内
var codePages = map[string]encoding.Encoding{
	"ANSI_874":  charmap.Windows874,
	"ANSI_1250": charmap.Windows1250,
	"ANSI_1251": charmap.Windows1251,
	"ANSI_1252": charmap.Windows1252,
	"ANSI_1253": charmap.Windows1253,
	"ANSI_1254": charmap.Windows1254,
	"ANSI_1255": charmap.Windows1255,
	"ANSI_1256": charmap.Windows1256,
	"ANSI_1257": charmap.Windows1257,
	"ANSI_1258": charmap.Windows1258,
	"DOS437":    charmap.CodePage437,
	"DOS850":    charmap.CodePage850,
}

// LookupCodePage 根据 $DWGCODEPAGE 的值查找编码，UTF-8 与空值返回 nil
func LookupCodePage(name string) (encoding.Encoding, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	switch name {
	case "", "UTF-8", "UTF8":
		return nil, nil
	}
	if enc, ok := codePages[name]; ok {
		return enc, nil
	}
	return nil, fmt.Errorf("unsupported code page %q", name)
}
