package marc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddControlField(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		value   string
		wantErr bool
	}{
		{name: "control number", tag: "001", value: "ocm12345"},
		{name: "timestamp", tag: "005", value: "20240101120000.0"},
		{name: "fixed data", tag: "008", value: "230414s2023    nyu           000 0 eng  "},
		{name: "data field tag rejected", tag: "245", value: "whatever", wantErr: true},
		{name: "boundary tag rejected", tag: "010", value: "whatever", wantErr: true},
		{name: "short tag", tag: "01", value: "x", wantErr: true},
		{name: "alpha tag", tag: "0a1", value: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord()
			err := rec.AddControlField(tt.tag, tt.value)
			if tt.wantErr {
				var fieldErr *FieldError
				require.ErrorAs(t, err, &fieldErr)
				assert.Equal(t, 0, rec.Len())
				return
			}
			require.NoError(t, err)
			require.Equal(t, 1, rec.Len())
			f := rec.Fields()[0]
			assert.True(t, f.IsControl())
			assert.Equal(t, tt.value, f.Value)
		})
	}
}

func TestAddDataField(t *testing.T) {
	tests := []struct {
		name      string
		tag       string
		ind1      string
		ind2      string
		subfields []SubField
		wantErr   bool
		wantInd1  string
		wantInd2  string
	}{
		{
			name:      "plain field",
			tag:       "245",
			ind1:      "1",
			ind2:      "0",
			subfields: []SubField{{Code: "a", Value: "Moby Dick"}},
			wantInd1:  "1",
			wantInd2:  "0",
		},
		{
			name:      "empty indicator stored as space",
			tag:       "100",
			ind1:      "",
			ind2:      "",
			subfields: []SubField{{Code: "a", Value: "Melville, Herman"}},
			wantInd1:  " ",
			wantInd2:  " ",
		},
		{
			name:      "backslash indicator stored as space",
			tag:       "650",
			ind1:      `\`,
			ind2:      "0",
			subfields: []SubField{{Code: "a", Value: "Whaling"}},
			wantInd1:  " ",
			wantInd2:  "0",
		},
		{
			name:    "no subfields",
			tag:     "245",
			ind1:    "1",
			ind2:    "0",
			wantErr: true,
		},
		{
			name:      "multi-character subfield code",
			tag:       "245",
			ind1:      "1",
			ind2:      "0",
			subfields: []SubField{{Code: "ab", Value: "x"}},
			wantErr:   true,
		},
		{
			name:      "control tag rejected",
			tag:       "001",
			ind1:      " ",
			ind2:      " ",
			subfields: []SubField{{Code: "a", Value: "x"}},
			wantErr:   true,
		},
		{
			name:      "multi-character indicator",
			tag:       "245",
			ind1:      "10",
			ind2:      "0",
			subfields: []SubField{{Code: "a", Value: "x"}},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord()
			err := rec.AddDataField(tt.tag, tt.ind1, tt.ind2, tt.subfields)
			if tt.wantErr {
				var fieldErr *FieldError
				require.ErrorAs(t, err, &fieldErr)
				return
			}
			require.NoError(t, err)
			f := rec.Fields()[0]
			assert.False(t, f.IsControl())
			assert.Equal(t, tt.wantInd1, f.Indicator1)
			assert.Equal(t, tt.wantInd2, f.Indicator2)
		})
	}
}

func TestRecordPreservesInsertionOrder(t *testing.T) {
	rec := NewRecord()
	require.NoError(t, rec.AddDataField("650", " ", "0", []SubField{{Code: "a", Value: "Whaling"}}))
	require.NoError(t, rec.AddControlField("001", "ocm1"))
	require.NoError(t, rec.AddDataField("245", "1", "0", []SubField{{Code: "a", Value: "Moby Dick"}}))
	require.NoError(t, rec.AddDataField("650", " ", "0", []SubField{{Code: "a", Value: "Sea stories"}}))

	var tags []string
	for _, f := range rec.Fields() {
		tags = append(tags, f.Tag)
	}
	assert.Equal(t, []string{"650", "001", "245", "650"}, tags)

	subjects := rec.FieldsByTag("650")
	require.Len(t, subjects, 2)
	assert.Equal(t, "Whaling", subjects[0].SubField("a"))
	assert.Equal(t, "Sea stories", subjects[1].SubField("a"))
}

func TestFieldString(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{
			name:  "control field",
			field: Field{Tag: "001", Value: "ocm12345"},
			want:  "=001  ocm12345",
		},
		{
			name: "data field with blanks",
			field: Field{
				Tag: "100", Indicator1: "1", Indicator2: " ",
				SubFields: []SubField{{Code: "a", Value: "Melville, Herman"}},
			},
			want: `=100  1\ $a Melville, Herman`,
		},
		{
			name: "multiple subfields",
			field: Field{
				Tag: "245", Indicator1: "1", Indicator2: "0",
				SubFields: []SubField{
					{Code: "a", Value: "Moby Dick"},
					{Code: "c", Value: "Herman Melville."},
				},
			},
			want: "=245  10 $a Moby Dick $c Herman Melville.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.String())
		})
	}
}

func TestFieldErrorUnwrapping(t *testing.T) {
	rec := NewRecord()
	err := rec.AddDataField("24", "1", "0", []SubField{{Code: "a", Value: "x"}})
	require.Error(t, err)

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "24", fieldErr.Tag)
}
