package dxf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/zooyer/dxfcodec/core"
	"github.com/zooyer/dxfcodec/entities"
)

// sectionWriter 交替写出段标记与实体，实体写出失败时跳过并记录错误
type sectionWriter struct {
	bw    *bufio.Writer
	tw    *core.Writer
	codec *entities.Codec
	errs  []error
	last  int64 // 已分配的最大句柄
}

// closing 创建缺失的 SEQEND / ENDBLK，句柄接在文档已有句柄之后
func (w *sectionWriter) closing(t *entities.Type) *entities.Record {
	r := entities.New(t)
	w.last++
	_ = r.SetHandle("handle", w.last)
	return r
}

func (w *sectionWriter) tag(code int, value string) {
	w.tw.WriteString(code, value)
}

func (w *sectionWriter) begin(name string) {
	w.tag(0, "SECTION")
	w.tag(2, name)
}

func (w *sectionWriter) end() {
	w.tag(0, "ENDSEC")
}

// record 写出一个实体，失败时返回 false
func (w *sectionWriter) record(r *entities.Record) bool {
	if err := w.tw.Flush(); err != nil {
		return false
	}
	if _, err := w.codec.Encode(w.bw, r); err != nil {
		w.errs = append(w.errs, err)
		w.codec.Logger().Warn("entity skipped", "type", r.Type.Name, "handle", fmt.Sprintf("%x", r.ID()), "err", err)
		return false
	}
	return true
}

// records 写出链中的实体及其跟随序列，返回成功写出的数量
func (w *sectionWriter) records(d *Document, chain *entities.Chain[*entities.Record]) int {
	n := 0
	for r := range chain.All() {
		if !w.record(r) {
			// 父实体失败时属性与顶点一并跳过
			continue
		}
		n++
		seq, ok := d.sequences[r]
		if !ok {
			continue
		}
		for child := range seq.Items.All() {
			w.record(child)
		}
		end := seq.End
		if end == nil {
			end = w.closing(entities.SeqEndType)
		}
		w.record(end)
	}
	return n
}

func (d *Document) writeHeader(w *sectionWriter, rev core.Revision) {
	w.begin("HEADER")
	w.tag(9, "$ACADVER")
	w.tag(1, rev.ACADVER())
	// $HANDSEED 必须大于写出的所有句柄，包括补上的 SEQEND / ENDBLK
	seed := w.last + int64(d.missingEnds()) + 1
	for _, v := range d.Header {
		if strings.EqualFold(v.Name, "$ACADVER") {
			continue
		}
		w.tag(9, v.Name)
		for _, tag := range v.Tags {
			if strings.EqualFold(v.Name, "$HANDSEED") && tag.Code == 5 {
				if old, err := tag.Hex(); err == nil && old < seed {
					w.tw.WriteHex(5, seed)
					continue
				}
			}
			w.tag(tag.Code, tag.Value)
		}
	}
	w.end()
}

// missingEnds 返回写出时需要补上的 SEQEND 与 ENDBLK 数量
func (d *Document) missingEnds() int {
	n := 0
	for _, seq := range d.sequences {
		if seq.End == nil {
			n++
		}
	}
	for _, b := range d.blocks {
		if b.End == nil {
			n++
		}
	}
	return n
}

func (d *Document) writeTables(w *sectionWriter, rev core.Revision) {
	w.begin("TABLES")
	for _, t := range d.Tables {
		w.tag(0, "TABLE")
		w.tag(2, t.Name)
		if rev >= core.R13 {
			w.tw.WriteHex(5, t.Handle)
			w.tag(100, "AcDbSymbolTable")
		}
		// 只计入能够写出的表项
		n := 0
		for r := range t.Entries.All() {
			if w.codec.Validate(r) == nil {
				n++
			}
		}
		w.tw.WriteInt(70, int64(n))
		w.records(d, t.Entries)
		w.tag(0, "ENDTAB")
	}
	w.end()
}

func (d *Document) writeBlocks(w *sectionWriter) {
	w.begin("BLOCKS")
	for _, b := range d.blocks {
		if !w.record(b.Begin) {
			continue
		}
		w.records(d, b.Entities)
		end := b.End
		if end == nil {
			end = w.closing(entities.EndBlkType)
		}
		w.record(end)
	}
	w.end()
}

// Write 按目标版本写出整个文档。写出失败的实体被跳过，
// 返回的错误包含每一个被跳过的实体。
func (d *Document) Write(out io.Writer, rev core.Revision) error {
	var (
		bw    = bufio.NewWriter(out)
		codec = entities.NewCodec(rev, d.opts...)
		opts  = []core.WriterOption{core.WithPrecision(codec.Precision())}
	)
	if !rev.Unicode() && d.CodePage != "" {
		if enc, err := core.LookupCodePage(d.CodePage); err == nil {
			opts = append(opts, core.WithEncoding(enc))
			codec = entities.NewCodec(rev, append(slices.Clone(d.opts), entities.WithEncoding(enc))...)
		}
	}
	w := &sectionWriter{
		bw:    bw,
		tw:    core.NewWriter(bw, opts...),
		codec: codec,
		last:  d.MaxHandle(),
	}

	d.writeHeader(w, rev)
	d.writeTables(w, rev)
	d.writeBlocks(w)

	w.begin("ENTITIES")
	w.records(d, d.Entities)
	w.end()

	if rev >= core.R13 && d.Objects.Len() > 0 {
		w.begin("OBJECTS")
		w.records(d, d.Objects)
		w.end()
	}
	w.tag(0, "EOF")

	if err := w.tw.Flush(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return errors.Join(w.errs...)
}

// Save 写出到文件，跳过实体时文件仍然保留
func (d *Document) Save(filename string, rev core.Revision) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return
	}

	defer func() {
		if e := file.Close(); e != nil && err == nil {
			err = e
		}
	}()

	return d.Write(file, rev)
}
