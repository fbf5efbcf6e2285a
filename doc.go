package dxf

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/zooyer/dxfcodec/core"
	"github.com/zooyer/dxfcodec/entities"
)

type DimStyle struct {
	Name      string
	Precision int     // 对应组码 271 DIMDEC，显示的小数位数
	ExLimit   float64 // 对应组码 44 DIMEXE，标注线超出延伸线的长度
	Scale     float64 // 对应组码 40 DIMSCALE，全局比例，影响所有标注特征
}

type Block struct {
	Name     string
	Begin    *entities.Record // BLOCK
	End      *entities.Record // ENDBLK
	Entities *entities.Chain[*entities.Record]
}

// Table 是 TABLES 段中的一张表，只保留已注册类型的表项
type Table struct {
	Name    string
	Handle  int64
	Entries *entities.Chain[*entities.Record]
}

// HeaderVar 是 HEADER 段中的一个 $ 变量，原样保留
type HeaderVar struct {
	Name string
	Tags []core.Tag
}

// Sequence 是跟随在 INSERT / POLYLINE 之后的 ATTRIB / VERTEX，以 SEQEND 结束
type Sequence struct {
	Items *entities.Chain[*entities.Record]
	End   *entities.Record
}

type Document struct {
	Revision  core.Revision
	CodePage  string
	Header    []HeaderVar
	Tables    []*Table
	Blocks    map[string]*Block
	Entities  *entities.Chain[*entities.Record]
	Objects   *entities.Chain[*entities.Record]
	DimStyles map[string]*DimStyle
	Skipped   map[string]int // 未注册而跳过的类型及数量

	blocks    []*Block
	sequences map[*entities.Record]*Sequence
	codec     *entities.Codec
	opts      []entities.Option
	source    string
}

type Option func(*Document)

// WithSource 诊断信息中的来源名称
func WithSource(name string) Option {
	return func(d *Document) { d.source = name }
}

// WithCodecOptions 读取与写出时传给 Codec 的选项
func WithCodecOptions(opts ...entities.Option) Option {
	return func(d *Document) { d.opts = append(d.opts, opts...) }
}

// New 创建空文档
func New(rev core.Revision, opts ...Option) *Document {
	d := &Document{
		Revision:  rev,
		Blocks:    make(map[string]*Block),
		Entities:  &entities.Chain[*entities.Record]{},
		Objects:   &entities.Chain[*entities.Record]{},
		DimStyles: make(map[string]*DimStyle),
		Skipped:   make(map[string]int),
		sequences: make(map[*entities.Record]*Sequence),
		source:    "<stream>",
	}
	for _, opt := range opts {
		opt(d)
	}
	d.codec = entities.NewCodec(rev, d.opts...)
	return d
}

// Logger 返回诊断信息使用的日志
func (d *Document) Logger() *log.Logger {
	return d.codec.Logger()
}

// Diagnostics 返回读取过程中累计的诊断信息
func (d *Document) Diagnostics() []entities.Diagnostic {
	return d.codec.Diagnostics()
}

// Children 返回 INSERT 的属性或 POLYLINE 的顶点，没有时为 nil
func (d *Document) Children(r *entities.Record) *entities.Chain[*entities.Record] {
	if seq, ok := d.sequences[r]; ok {
		return seq.Items
	}
	return nil
}

// Block 按名称查找块定义（不区分大小写）
func (d *Document) Block(name string) (*Block, bool) {
	b, ok := d.Blocks[strings.ToUpper(name)]
	return b, ok
}

// Table 按名称查找表
func (d *Document) Table(name string) (*Table, bool) {
	for _, t := range d.Tables {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return nil, false
}

// Add 向 ENTITIES 段追加实体。children 为 ATTRIB / VERTEX，
// 最后一个为 SEQEND 时作为序列结束标记。
func (d *Document) Add(r *entities.Record, children ...*entities.Record) {
	d.Entities.Append(r)
	if len(children) == 0 {
		return
	}
	seq := &Sequence{Items: &entities.Chain[*entities.Record]{}}
	if last := children[len(children)-1]; last.Type == entities.SeqEndType {
		seq.End = last
		children = children[:len(children)-1]
	}
	for _, child := range children {
		seq.Items.Append(child)
	}
	d.sequences[r] = seq
}

// MaxHandle 返回文档中最大的句柄，没有句柄时为 0
func (d *Document) MaxHandle() int64 {
	var n int64
	visit := func(r *entities.Record) {
		if r != nil {
			n = max(n, r.ID())
		}
	}
	chain := func(c *entities.Chain[*entities.Record]) {
		for r := range c.All() {
			visit(r)
		}
	}

	for _, t := range d.Tables {
		n = max(n, t.Handle)
		chain(t.Entries)
	}
	for _, b := range d.blocks {
		visit(b.Begin)
		visit(b.End)
		chain(b.Entities)
	}
	for _, seq := range d.sequences {
		chain(seq.Items)
		visit(seq.End)
	}
	chain(d.Entities)
	chain(d.Objects)
	return n
}

// AddBlock 添加块定义，同名的块会被替换。
// BLOCK 与 ENDBLK 使用比文档与 records 中都大的新句柄。
func (d *Document) AddBlock(name string, base core.Point, records ...*entities.Record) *Block {
	next := d.MaxHandle()
	for _, r := range records {
		next = max(next, r.ID())
	}

	begin := entities.New(entities.BlockType)
	_ = begin.SetHandle("handle", next+1)
	_ = begin.SetText("name", name)
	_ = begin.SetPoint("base", base)
	end := entities.New(entities.EndBlkType)
	_ = end.SetHandle("handle", next+2)

	block := &Block{
		Name:     strings.ToUpper(name),
		Begin:    begin,
		End:      end,
		Entities: entities.NewChain(records...),
	}
	if old, ok := d.Blocks[block.Name]; ok {
		d.blocks = slices.DeleteFunc(d.blocks, func(b *Block) bool { return b == old })
	}
	d.Blocks[block.Name] = block
	d.blocks = append(d.blocks, block)
	return block
}

// Free 释放文档持有的所有链，返回释放的节点数
func (d *Document) Free() int {
	logger := d.Logger()
	n := 0
	free := func(chain *entities.Chain[*entities.Record]) {
		for r := range chain.All() {
			n += r.Free(logger)
		}
		n += chain.FreeAll(logger)
	}

	for _, seq := range d.sequences {
		free(seq.Items)
	}
	for _, t := range d.Tables {
		free(t.Entries)
	}
	for _, b := range d.blocks {
		free(b.Entities)
	}
	free(d.Entities)
	free(d.Objects)
	clear(d.sequences)
	return n
}

func (d *Document) eof(s *core.Scanner) error {
	if err := s.Err(); err != nil {
		return err
	}
	return &core.StreamError{Source: s.Source(), Line: s.Line(), Err: io.ErrUnexpectedEOF}
}

// isTag 判断 LastTag 是否为指定名称的 0 组码
func isTag(s *core.Scanner, names ...string) bool {
	if s.LastTag.Code != 0 {
		return false
	}
	value := strings.ToUpper(s.LastTag.String())
	for _, name := range names {
		if value == name {
			return true
		}
	}
	return false
}

func (d *Document) parseHeader(s *core.Scanner) error {
	var current *HeaderVar
	for {
		if !s.Next() {
			return d.eof(s)
		}
		tag := s.LastTag
		if isTag(s, "ENDSEC") {
			return nil
		}
		if tag.Code == 9 {
			d.Header = append(d.Header, HeaderVar{Name: tag.String()})
			current = &d.Header[len(d.Header)-1]
			continue
		}
		if current == nil {
			continue
		}
		current.Tags = append(current.Tags, tag)

		switch strings.ToUpper(current.Name) {
		case "$ACADVER":
			rev, err := core.ParseRevision(tag.String())
			if err != nil {
				d.Logger().Warn("unknown $ACADVER, keeping default", "value", tag.String(), "revision", d.Revision)
				continue
			}
			d.Revision = rev
			d.codec.SetRevision(rev)
		case "$DWGCODEPAGE":
			d.CodePage = tag.String()
			// R2007 起为 UTF-8
			if d.Revision.Unicode() {
				continue
			}
			if err := s.SetCodePage(d.CodePage); err != nil {
				d.Logger().Warn("code page not supported, strings read as UTF-8", "codepage", d.CodePage, "line", s.Line())
			}
		}
	}
}

// skip 跳过未注册的类型，直到下一个 0 组码
func (d *Document) skip(s *core.Scanner, name string) error {
	line := s.Line()
	for {
		if !s.Next() {
			return d.eof(s)
		}
		if s.LastTag.Code == 0 {
			break
		}
	}
	d.Skipped[name]++
	d.Logger().Debug("unsupported type skipped", "type", name, "source", s.Source(), "line", line)
	return nil
}

// read 读取 LastTag 所在的实体，未注册的类型返回 nil
func (d *Document) read(s *core.Scanner) (*entities.Record, error) {
	name := strings.ToUpper(s.LastTag.String())
	t, ok := entities.Lookup(name)
	if !ok {
		return nil, d.skip(s, name)
	}
	return d.codec.Decode(s, t)
}

// readSequence 读取跟随的 ATTRIB / VERTEX 直到 SEQEND
func (d *Document) readSequence(s *core.Scanner, r *entities.Record) error {
	var follows bool
	switch r.Type {
	case entities.InsertType:
		v, _ := r.Int("attribs_follow")
		follows = v == 1
	case entities.PolylineType:
		v, _ := r.Int("vertices_follow")
		follows = v == 1 || isTag(s, "VERTEX")
	}
	if !follows {
		return nil
	}

	seq := &Sequence{Items: &entities.Chain[*entities.Record]{}}
	d.sequences[r] = seq
	for isTag(s, "ATTRIB", "VERTEX") {
		child, err := d.read(s)
		if err != nil {
			return err
		}
		seq.Items.Append(child)
	}
	if !isTag(s, "SEQEND") {
		d.Logger().Warn("sequence not terminated by SEQEND", "type", r.Type.Name, "handle", fmt.Sprintf("%x", r.ID()), "line", s.Line())
		return nil
	}
	end, err := d.codec.Decode(s, entities.SeqEndType)
	seq.End = end
	return err
}

// readRecords 读取实体直到遇到 stop 中的 0 组码，LastTag 停在该组码上
func (d *Document) readRecords(s *core.Scanner, into *entities.Chain[*entities.Record], stop ...string) error {
	for {
		if s.LastTag.Code != 0 {
			if !s.Next() {
				return d.eof(s)
			}
			continue
		}
		if isTag(s, stop...) {
			return nil
		}
		r, err := d.read(s)
		if err != nil {
			return err
		}
		if r == nil {
			continue
		}
		into.Append(r)
		if err := d.readSequence(s, r); err != nil {
			return err
		}
	}
}

func (d *Document) parseTables(s *core.Scanner) error {
	for {
		if !s.Next() {
			return d.eof(s)
		}
		if isTag(s, "ENDSEC") {
			return nil
		}
		if !isTag(s, "TABLE") {
			continue
		}

		table := &Table{Entries: &entities.Chain[*entities.Record]{}}
		// 表头: 2 名称, 5 句柄, 70 数量 ...
		for {
			if !s.Next() {
				return d.eof(s)
			}
			tag := s.LastTag
			if tag.Code == 0 {
				break
			}
			switch tag.Code {
			case 2:
				table.Name = strings.ToUpper(tag.String())
			case 5:
				table.Handle, _ = tag.Hex()
			}
		}
		if err := d.readRecords(s, table.Entries, "ENDTAB", "ENDSEC"); err != nil {
			return err
		}
		d.Tables = append(d.Tables, table)
		if isTag(s, "ENDSEC") {
			return nil
		}
	}
}

func (d *Document) parseBlocks(s *core.Scanner) error {
	if !s.Next() {
		return d.eof(s)
	}
	for {
		if isTag(s, "ENDSEC") {
			return nil
		}
		if !isTag(s, "BLOCK") {
			if !s.Next() {
				return d.eof(s)
			}
			continue
		}

		begin, err := d.codec.Decode(s, entities.BlockType)
		if err != nil {
			return err
		}
		name, _ := begin.Text("name")
		block := &Block{
			Name:     strings.ToUpper(name),
			Begin:    begin,
			Entities: &entities.Chain[*entities.Record]{},
		}
		if err := d.readRecords(s, block.Entities, "ENDBLK", "ENDSEC"); err != nil {
			return err
		}
		if isTag(s, "ENDBLK") {
			if block.End, err = d.codec.Decode(s, entities.EndBlkType); err != nil {
				return err
			}
		}
		d.Blocks[block.Name] = block
		d.blocks = append(d.blocks, block)
	}
}

func (d *Document) parseSection(s *core.Scanner, into *entities.Chain[*entities.Record]) error {
	if !s.Next() {
		return d.eof(s)
	}
	return d.readRecords(s, into, "ENDSEC")
}

// indexDimStyles 由 DIMSTYLE 表项建立标注样式索引
func (d *Document) indexDimStyles() {
	table, ok := d.Table("DIMSTYLE")
	if !ok {
		return
	}
	for r := range table.Entries.All() {
		if r.Type != entities.DimStyleType {
			continue
		}
		name, _ := r.Text("name")
		precision, _ := r.Int("precision")
		exe, _ := r.Float("ext_extension")
		scale, _ := r.Float("scale")
		if scale == 0 {
			scale = 1 // 防止乘法归零
		}
		if name = strings.ToUpper(name); name != "" {
			d.DimStyles[name] = &DimStyle{
				Name:      name,
				Precision: int(precision),
				ExLimit:   exe,
				Scale:     scale,
			}
		}
	}
}

func Open(filename string, opts ...Option) (doc *Document, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return
	}

	defer func() {
		if e := file.Close(); e != nil && err == nil {
			err = e
		}
	}()

	return Load(file, append([]Option{WithSource(filename)}, opts...)...)
}

// Load 读取整个文档。出错时仍返回已读取的部分。
// 没有 $ACADVER 的文件按 R12 处理。
func Load(reader io.Reader, opts ...Option) (*Document, error) {
	var (
		document = New(core.R12, opts...)
		scanner  = core.NewScanner(reader, core.WithSource(document.source))
	)

	for scanner.Next() {
		if !isTag(scanner, "SECTION") {
			continue
		}
		if !scanner.Next() {
			break
		}

		var err error
		switch sectionName := strings.ToUpper(scanner.LastTag.String()); sectionName {
		case "HEADER":
			err = document.parseHeader(scanner)
		case "TABLES":
			err = document.parseTables(scanner)
		case "BLOCKS":
			err = document.parseBlocks(scanner)
		case "ENTITIES":
			err = document.parseSection(scanner, document.Entities)
		case "OBJECTS":
			err = document.parseSection(scanner, document.Objects)
		default:
			document.Logger().Debug("section skipped", "section", sectionName, "line", scanner.Line())
		}
		if err != nil {
			return document, err
		}
	}
	document.indexDimStyles()

	return document, scanner.Err()
}
