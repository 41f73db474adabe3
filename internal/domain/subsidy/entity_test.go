package subsidy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/subsidy"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
)

func TestSubsidyValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      subsidy.Subsidy
		wantErr bool
	}{
		{
			name: "valid record",
			in:   subsidy.Subsidy{ID: 1, Name: "ものづくり補助金"},
		},
		{
			name:    "zero id",
			in:      subsidy.Subsidy{Name: "ものづくり補助金"},
			wantErr: true,
		},
		{
			name:    "blank name",
			in:      subsidy.Subsidy{ID: 1, Name: "   "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.in.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.CodeInvalidParam, errors.GetCode(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSubsidyClone(t *testing.T) {
	t.Parallel()

	orig := subsidy.Subsidy{
		ID:         1,
		Name:       "IT導入補助金",
		Industries: []string{"IT", "小売業"},
		Purposes:   []string{"デジタル化"},
		Conditions: []string{"中小企業であること"},
		Documents:  []string{"事業計画書"},
	}

	cp := orig.Clone()
	cp.Industries[0] = "製造業"
	cp.Purposes = append(cp.Purposes, "生産性向上")
	cp.Conditions[0] = "変更"
	cp.Documents[0] = "変更"

	assert.Equal(t, "IT", orig.Industries[0])
	assert.Len(t, orig.Purposes, 1)
	assert.Equal(t, "中小企業であること", orig.Conditions[0])
	assert.Equal(t, "事業計画書", orig.Documents[0])
}

func TestSubsidyTagLookups(t *testing.T) {
	t.Parallel()

	s := subsidy.Subsidy{
		Industries: []string{"製造業", "建設業"},
		Purposes:   []string{"設備投資"},
	}

	assert.True(t, s.HasIndustry("製造業"))
	assert.False(t, s.HasIndustry("IT"))
	assert.True(t, s.HasPurpose("設備投資"))
	assert.False(t, s.HasPurpose("販路開拓"))
}
