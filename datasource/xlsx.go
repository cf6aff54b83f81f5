// Package datasource 从外部表格读取数据，用于驱动坐标轴的取值范围。
package datasource

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoNumbers 表示所选列中没有任何可解析的数值。
var ErrNoNumbers = errors.New("datasource: 列中没有数值")

// Ref 指向工作簿中的一列，文本形式为 "file.xlsx:Sheet1:B"。
// 省略工作表时使用第一个工作表。
type Ref struct {
	Path   string
	Sheet  string
	Column string
}

func (r Ref) String() string {
	if r.Sheet == "" {
		return r.Path + ":" + r.Column
	}
	return r.Path + ":" + r.Sheet + ":" + r.Column
}

// ParseRef 解析 "path:sheet:column" 或 "path:column"。
func ParseRef(s string) (Ref, error) {
	parts := strings.Split(s, ":")
	var ref Ref
	switch len(parts) {
	case 2:
		ref = Ref{Path: parts[0], Column: parts[1]}
	case 3:
		ref = Ref{Path: parts[0], Sheet: parts[1], Column: parts[2]}
	default:
		return Ref{}, fmt.Errorf("无效的数据引用 %q，应为 file.xlsx:Sheet:Column", s)
	}
	ref.Path = strings.TrimSpace(ref.Path)
	ref.Column = strings.ToUpper(strings.TrimSpace(ref.Column))
	if ref.Path == "" || ref.Column == "" {
		return Ref{}, fmt.Errorf("无效的数据引用 %q", s)
	}
	if _, err := excelize.ColumnNameToNumber(ref.Column); err != nil {
		return Ref{}, fmt.Errorf("无效的列名 %q: %w", ref.Column, err)
	}
	return ref, nil
}

// Resolve 将相对路径解析到 base 目录下。
func (r Ref) Resolve(base string) Ref {
	if base != "" && !filepath.IsAbs(r.Path) {
		r.Path = filepath.Join(base, r.Path)
	}
	return r
}

// ColumnRange 读取引用列中所有数值单元格的最小值与最大值。
// 非数值单元格（例如表头）会被跳过。
func ColumnRange(ref Ref) ([2]float64, error) {
	f, err := excelize.OpenFile(ref.Path)
	if err != nil {
		return [2]float64{}, fmt.Errorf("打开工作簿失败: %w", err)
	}
	defer f.Close()
	return columnRange(f, ref)
}

func columnRange(f *excelize.File, ref Ref) ([2]float64, error) {
	sheet := ref.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return [2]float64{}, fmt.Errorf("工作簿中没有工作表")
		}
		sheet = sheets[0]
	}
	col, err := excelize.ColumnNameToNumber(ref.Column)
	if err != nil {
		return [2]float64{}, fmt.Errorf("无效的列名 %q: %w", ref.Column, err)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return [2]float64{}, fmt.Errorf("读取工作表 %s 失败: %w", sheet, err)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range rows {
		if col > len(row) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col-1]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return [2]float64{}, fmt.Errorf("%s: %w", ref, ErrNoNumbers)
	}
	return [2]float64{lo, hi}, nil
}
