package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Title:   "Inscripciones recientes",
		Columns: []string{"ID", "Nombres", "Dirección"},
		Rows: [][]string{
			{"1", "Ana", "Calle 1, Lima"},
			{"2", "José", "Av. Perú 200"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleTable())

	require.NoError(t, err)
	assert.Equal(t, "ID,Nombres,Dirección\n1,Ana,\"Calle 1, Lima\"\n2,José,Av. Perú 200\n", string(out))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleTable())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestExportersRejectRaggedRows(t *testing.T) {
	table := sampleTable()
	table.Rows = append(table.Rows, []string{"3"})

	_, err := NewCSVExporter().Render(table)
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Table{})
	assert.Error(t, err)
}
