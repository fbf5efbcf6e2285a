package core

import (
	"errors"
	"strconv"
	"strings"
)

var errRevision = errors.New("unsupported DXF revision")

// Revision 是 DXF 版本号，按发布顺序递增
type Revision int

// DXF versions known to this library.
const (
	_ Revision = iota
	R10
	R11
	R12
	R13
	R14
	R2000
	R2002
	R2004
	R2007
	R2008
	R2009
	R2010
	R2013
	R2018
	tooHighRevision
)

var revisionNames = [...]string{
	R10:   "R10",
	R11:   "R11",
	R12:   "R12",
	R13:   "R13",
	R14:   "R14",
	R2000: "R2000",
	R2002: "R2002",
	R2004: "R2004",
	R2007: "R2007",
	R2008: "R2008",
	R2009: "R2009",
	R2010: "R2010",
	R2013: "R2013",
	R2018: "R2018",
}

// $ACADVER 与版本的对应关系，同一个代码对应多个版本时读取取最低的。
// R2008 / R2009 没有自己的代码，写出为 AC1021，读回为 R2007。
var acadVersions = []struct {
	code string
	rev  Revision
}{
	{"AC1006", R10},
	{"AC1009", R11},
	{"AC1012", R13},
	{"AC1014", R14},
	{"AC1015", R2000},
	{"AC1018", R2004},
	{"AC1021", R2007},
	{"AC1021", R2008},
	{"AC1021", R2009},
	{"AC1024", R2010},
	{"AC1027", R2013},
	{"AC1032", R2018},
}

// ParseRevision 解析 "R2000" 形式的名称或 $ACADVER 代码 (如 "AC1015")
func ParseRevision(s string) (Revision, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if strings.HasPrefix(s, "AC") {
		for _, v := range acadVersions {
			if v.code == s {
				return v.rev, nil
			}
		}
		return 0, errRevision
	}
	if !strings.HasPrefix(s, "R") {
		s = "R" + s
	}
	for rev, name := range revisionNames {
		if name != "" && name == s {
			return Revision(rev), nil
		}
	}
	return 0, errRevision
}

// Valid 判断是否为已知版本
func (r Revision) Valid() bool {
	return r >= R10 && r < tooHighRevision
}

// ACADVER 返回写入 HEADER 的 $ACADVER 代码
func (r Revision) ACADVER() string {
	code := ""
	for _, v := range acadVersions {
		if v.rev <= r {
			code = v.code
		}
	}
	return code
}

// Unicode 从 R2007 起 DXF 文件固定为 UTF-8
func (r Revision) Unicode() bool {
	return r >= R2007
}

// Within 判断版本是否在 [min, max] 区间内，0 表示不限
func (r Revision) Within(lo, hi Revision) bool {
	if lo != 0 && r < lo {
		return false
	}
	if hi != 0 && r > hi {
		return false
	}
	return true
}

func (r Revision) String() string {
	if r.Valid() {
		return revisionNames[r]
	}
	return "core.Revision(" + strconv.Itoa(int(r)) + ")"
}
