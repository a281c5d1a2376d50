package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fueleu/fleet-portal/fleet-portal-backend/internal/compliance"
)

func TestWriteFleetSummary(t *testing.T) {
	exporter := NewExcelExporter()

	rows := []compliance.ShipStatus{
		{ShipID: "IMO9074729", Year: 2025, Balance: -340962000, Banked: 0, Compliant: false},
		{ShipID: "IMO9419802", Year: 2025, Balance: 152000, Banked: 40000, Compliant: true},
	}

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteFleetSummary(&buf, 2025, rows))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer file.Close()

	sheet := "Fleet 2025"
	header, err := file.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Ship", header)

	ship, err := file.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "IMO9074729", ship)

	ship, err = file.GetCellValue(sheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "IMO9419802", ship)
}

func TestWriteFleetSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExcelExporter().WriteFleetSummary(&buf, 2025, nil))
	assert.NotZero(t, buf.Len())
}
