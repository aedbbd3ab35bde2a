package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vineetk-singh/auctionapi/internal/models"
)

const playerCSVHeader = "_id,age,country,role,basePrice,batting_totalRuns,batting_total4s,batting_total6s,batting_totalCenturies,batting_total50s,batting_total20s,batting_total30s,batting_total40s,batting_battingAverage,bowling_totalOvers,bowling_totalWides,bowling_totalRuns,bowling_totalNoBalls,bowling_totalWickets,fielding_totalCatches,fielding_totalRunOuts\n"

func TestPlayerImportMapsNestedRecords(t *testing.T) {
	db := newTestDB(t)
	importer := NewPlayerImporter(db, newTestLogger())

	csv := playerCSVHeader +
		"Virat Kohli,35,India,batting,1000000,12000,1000,500,70,100,50,40,30,55.4,0,0,0,0,0,100,15\n"
	path := writeTempCSV(t, csv)

	result, err := importer.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Submitted)
	assert.Empty(t, result.Failed)

	player, err := models.GetPlayerByName(db, "Virat Kohli")
	require.NoError(t, err)
	assert.Equal(t, 35, player.Age)
	assert.Equal(t, "India", player.Country)
	assert.Equal(t, models.RoleBatting, player.Role)
	assert.Equal(t, float64(1000000), player.BasePrice)
	assert.Equal(t, float64(12000), player.Records.Batting.TotalRuns)
	assert.Equal(t, 55.4, player.Records.Batting.BattingAverage)
	assert.Equal(t, float64(100), player.Records.Fielding.TotalCatches)
}

func TestPlayerImportCoercesBlankAndGarbageStatsToZero(t *testing.T) {
	db := newTestDB(t)
	importer := NewPlayerImporter(db, newTestLogger())

	// Missing trailing stat columns, an empty cell and a non-numeric cell.
	csv := "_id,age,country,role,basePrice,batting_totalRuns,bowling_totalWickets\n" +
		"Bumrah,30,India,bowling,,abc\n"
	path := writeTempCSV(t, csv)

	result, err := importer.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Submitted)

	player, err := models.GetPlayerByName(db, "Bumrah")
	require.NoError(t, err)
	assert.Equal(t, float64(0), player.BasePrice)
	assert.Equal(t, float64(0), player.Records.Batting.TotalRuns)
	assert.Equal(t, float64(0), player.Records.Bowling.TotalWickets)
}

func TestPlayerImportReimportOverwrites(t *testing.T) {
	db := newTestDB(t)
	importer := NewPlayerImporter(db, newTestLogger())

	first := playerCSVHeader +
		"Bumrah,30,India,bowling,900000,100,10,5,0,1,0,0,0,9.4,500,30,400,15,150,20,5\n"
	result, err := importer.ImportFile(writeTempCSV(t, first))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Submitted)

	second := playerCSVHeader +
		"Bumrah,31,India,bowling,950000,120,12,6,0,1,0,0,0,10.1,520,31,410,16,160,22,6\n"
	result, err = importer.ImportFile(writeTempCSV(t, second))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Submitted)

	var count int64
	require.NoError(t, db.Model(&models.Player{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	player, err := models.GetPlayerByName(db, "Bumrah")
	require.NoError(t, err)
	assert.Equal(t, 31, player.Age)
	assert.Equal(t, float64(950000), player.BasePrice)
	assert.Equal(t, float64(160), player.Records.Bowling.TotalWickets)
}

func TestPlayerImportDuplicateRowsInFileLastWins(t *testing.T) {
	db := newTestDB(t)
	importer := NewPlayerImporter(db, newTestLogger())

	csv := playerCSVHeader +
		"Rohit,36,India,batting,800000,9000,900,400,60,80,40,30,20,48.2,0,0,0,0,0,80,10\n" +
		"Rohit,37,India,batting,850000,9500,950,420,62,82,41,31,21,49.0,0,0,0,0,0,85,11\n"
	result, err := importer.ImportFile(writeTempCSV(t, csv))
	require.NoError(t, err)

	// The reported count covers every row in the file, duplicates included.
	assert.Equal(t, 2, result.Submitted)

	player, err := models.GetPlayerByName(db, "Rohit")
	require.NoError(t, err)
	assert.Equal(t, 37, player.Age)
	assert.Equal(t, float64(850000), player.BasePrice)
}

func TestPlayerImportRemovesUploadedFile(t *testing.T) {
	db := newTestDB(t)
	importer := NewPlayerImporter(db, newTestLogger())

	path := writeTempCSV(t, playerCSVHeader+
		"Dhoni,42,India,allrounder,700000,10000,800,300,50,70,30,20,10,40.0,10,1,50,0,2,150,30\n")

	_, err := importer.ImportFile(path)
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPlayerImportRemovesFileOnParseFailure(t *testing.T) {
	db := newTestDB(t)
	importer := NewPlayerImporter(db, newTestLogger())

	// Unbalanced quote makes the CSV unreadable.
	path := writeTempCSV(t, playerCSVHeader+"\"broken\n")

	_, err := importer.ImportFile(path)
	assert.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
