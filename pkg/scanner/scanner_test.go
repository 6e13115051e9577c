package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecord(length int) []byte {
	data := make([]byte, length)
	lenStr := []byte{byte('0' + length/10000%10), byte('0' + length/1000%10), byte('0' + length/100%10), byte('0' + length/10%10), byte('0' + length%10)}
	copy(data[0:5], lenStr)
	data[length-1] = 0x1D
	return data
}

func TestScanTwoRecords(t *testing.T) {
	r1 := makeRecord(30)
	r2 := makeRecord(40)
	buf := append(append([]byte{}, r1...), r2...)

	frames, err := Scan(buf)
	require.NoError(t, err)
	require.Len(t, frames, 2)

	assert.Equal(t, 0, frames[0].Start)
	assert.Equal(t, 30, frames[0].Length)
	assert.Equal(t, 30, frames[1].Start)
	assert.Equal(t, 40, frames[1].Length)
}

func TestScanRejectsMissingTerminator(t *testing.T) {
	r1 := makeRecord(30)
	r1[29] = 'X'
	_, err := Scan(r1)
	assert.Error(t, err, "expected error for a missing record terminator")
}

func TestScanRejectsTruncatedPrefix(t *testing.T) {
	_, err := Scan([]byte{'0', '1'})
	assert.Error(t, err, "expected error for a truncated length prefix")
}

func TestScanRejectsOverrunLength(t *testing.T) {
	data := []byte("00100")
	_, err := Scan(data)
	assert.Error(t, err, "expected error when declared length exceeds the buffer")
}

func TestScanEmptyBuffer(t *testing.T) {
	frames, err := Scan(nil)
	require.NoError(t, err)
	assert.Empty(t, frames)
}
