package bookmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pdfbinder/internal/logsink"
)

func TestDefaults(t *testing.T) {
	rows := Defaults()
	require.Len(t, rows, 5)

	want := []Entry{
		{1, "封面"}, {2, "扉页"}, {3, "版权"}, {4, "目录"}, {6, "正文"},
	}
	assert.Equal(t, want, Parse(rows, nil))

	ids := map[string]bool{}
	for _, r := range rows {
		assert.NotEmpty(t, r.ID)
		ids[r.ID] = true
	}
	assert.Len(t, ids, 5)
}

func TestTableAdd(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		label   string
		wantErr error
	}{
		{name: "valid row", page: "7", label: "附录"},
		{name: "non numeric page is accepted", page: "abc", label: "附录"},
		{name: "empty page", page: "", label: "附录", wantErr: ErrEmptyField},
		{name: "empty label", page: "7", label: "", wantErr: ErrEmptyField},
		{name: "whitespace label", page: "7", label: "  ", wantErr: ErrEmptyField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := DefaultTable()
			row, err := tbl.Add(tt.page, tt.label)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 5, tbl.Len())
				return
			}
			require.NoError(t, err)
			rows := tbl.Rows()
			require.Len(t, rows, 6)
			assert.Equal(t, row, rows[5])
		})
	}
}

func TestTableRemove(t *testing.T) {
	tbl := DefaultTable()
	rows := tbl.Rows()

	require.NoError(t, tbl.Remove(rows[1].ID))
	got := tbl.Rows()
	require.Len(t, got, 4)
	assert.Equal(t, "封面", got[0].Label)
	assert.Equal(t, "版权", got[1].Label)

	assert.ErrorIs(t, tbl.Remove(rows[1].ID), ErrNoSelection)
	assert.ErrorIs(t, tbl.Remove(""), ErrNoSelection)
}

func TestRowsReturnsCopy(t *testing.T) {
	tbl := DefaultTable()
	rows := tbl.Rows()
	rows[0].Label = "changed"
	assert.Equal(t, "封面", tbl.Rows()[0].Label)
}

func TestParseSkipsInvalidPages(t *testing.T) {
	sink := logsink.New(nil, 0)
	rows := []Row{
		{Page: "1", Label: "封面"},
		{Page: "abc", Label: "坏行"},
		{Page: " 3 ", Label: "版权"},
		{Page: "1", Label: "封面"},
	}

	got := Parse(rows, sink)

	assert.Equal(t, []Entry{{1, "封面"}, {3, "版权"}, {1, "封面"}}, got)
	assert.Equal(t, []string{"警告：页码 'abc' 不是有效的整数，已跳过该行。"}, sink.Texts())
}

func TestParseRow(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		want    int
		wantErr bool
	}{
		{name: "plain", page: "12", want: 12},
		{name: "padded", page: " 7 ", want: 7},
		{name: "full-width digit", page: "\uff13", want: 3},
		{name: "full-width number", page: "\uff11\uff10", want: 10},
		{name: "ideographic space", page: "\u3000\uff14\u3000", want: 4},
		{name: "full-width minus", page: "\uff0d\uff12", want: -2},
		{name: "underscore group", page: "1_0", want: 10},
		{name: "decimal", page: "1.5", wantErr: true},
		{name: "leading underscore", page: "_1", wantErr: true},
		{name: "trailing underscore", page: "1_", wantErr: true},
		{name: "double underscore", page: "1__0", wantErr: true},
		{name: "empty", page: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ParseRow(Row{Page: tt.page, Label: "x"})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Entry{Page: tt.want, Label: "x"}, e)
		})
	}
}

func TestParseAcceptsFullWidthPages(t *testing.T) {
	sink := logsink.New(nil, 0)
	entries := Parse([]Row{{Page: "\uff13", Label: "目录"}, {Page: "1_0", Label: "正文"}}, sink)

	assert.Equal(t, []Entry{{Page: 3, Label: "目录"}, {Page: 10, Label: "正文"}}, entries)
	assert.Empty(t, sink.Texts())
}
