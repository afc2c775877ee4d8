package device

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgrewell/disc-kit/pkg/classify"
	"github.com/bgrewell/disc-kit/pkg/consts"
	"github.com/bgrewell/disc-kit/pkg/msf"
	"github.com/bgrewell/disc-kit/pkg/toc"
)

// writeCookedImage writes a minimal ISO-style image: 2048-byte sectors
// with a volume descriptor planted at sector 16.
func writeCookedImage(t *testing.T, sectors int, volumeID string) string {
	t.Helper()
	data := make([]byte, sectors*consts.COOKED_SECTOR_SIZE)
	vd := data[16*consts.COOKED_SECTOR_SIZE:]
	vd[0] = 1 // primary volume descriptor
	copy(vd[1:], consts.ISO9660_STD_IDENTIFIER)
	for i := 0; i < consts.ISO9660_IDENTIFIER_SIZE; i++ {
		vd[consts.ISO9660_SYSTEM_ID_OFFSET+i] = ' '
		vd[consts.ISO9660_VOLUME_ID_OFFSET+i] = ' '
	}
	copy(vd[consts.ISO9660_VOLUME_ID_OFFSET:], volumeID)

	path := filepath.Join(t.TempDir(), "disc.iso")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// writeRawImage writes raw 2352-byte sectors with the given mode and
// submode bytes in every sector.
func writeRawImage(t *testing.T, sectors int, mode, submode byte) string {
	t.Helper()
	data := make([]byte, sectors*consts.RAW_SECTOR_SIZE)
	for s := 0; s < sectors; s++ {
		base := s * consts.RAW_SECTOR_SIZE
		data[base+consts.MODE_BYTE_OFFSET] = mode
		data[base+consts.SUBMODE_BYTE_OFFSET] = submode
	}

	path := filepath.Join(t.TempDir(), "disc.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpenImageMissingFile(t *testing.T) {
	_, err := OpenImage(filepath.Join(t.TempDir(), "nope.iso"), nil)
	var oe *OpenError
	require.ErrorAs(t, err, &oe)
}

func TestImageSyntheticToc(t *testing.T) {
	path := writeCookedImage(t, 20, "TESTDISC")
	img, err := OpenImage(path, nil)
	require.NoError(t, err)
	defer img.Close()

	first, last, err := img.TrackRange()
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, last)

	tc, ctrl, err := img.TrackAddress(1)
	require.NoError(t, err)
	assert.Equal(t, msf.TimeCode{}, tc)
	assert.NotZero(t, ctrl&consts.DATA_TRACK_CONTROL)

	leadout, _, err := img.LeadoutAddress()
	require.NoError(t, err)
	assert.Equal(t, int32(20), leadout.Sector())

	_, _, err = img.TrackAddress(2)
	require.Error(t, err)
}

func TestImageAcquireAndClassify(t *testing.T) {
	path := writeCookedImage(t, 20, "TESTDISC")
	img, err := OpenImage(path, nil)
	require.NoError(t, err)
	defer img.Close()

	discToc, err := toc.Acquire(img, nil)
	require.NoError(t, err)
	require.Equal(t, 1, discToc.TrackCount())
	assert.Equal(t, toc.Data, discToc.Tracks[0].Kind)
	assert.Equal(t, int32(20), discToc.Tracks[0].LengthSectors)

	c, err := classify.Probe(img, discToc.Tracks[0].StartSector)
	require.NoError(t, err)
	assert.Equal(t, classify.Mode1, c.Mode)
	assert.True(t, c.ISO9660)
	assert.Equal(t, "TESTDISC", c.VolumeID)
}

func TestImageCookedFraming(t *testing.T) {
	path := writeCookedImage(t, 18, "VOL")
	img, err := OpenImage(path, nil)
	require.NoError(t, err)
	defer img.Close()

	raw, err := img.ReadRawSector(16)
	require.NoError(t, err)
	require.Len(t, raw, consts.RAW_SECTOR_SIZE)

	// Mode 1 sync pattern and BCD MSF header.
	assert.Equal(t, byte(0x00), raw[0])
	for i := 1; i <= 10; i++ {
		assert.Equal(t, byte(0xFF), raw[i])
	}
	assert.Equal(t, byte(0x00), raw[11])
	// sector 16 is 00:00:16
	assert.Equal(t, byte(0x00), raw[12])
	assert.Equal(t, byte(0x00), raw[13])
	assert.Equal(t, byte(0x16), raw[14], "frame is BCD coded")
	assert.Equal(t, byte(1), raw[consts.MODE_BYTE_OFFSET])
}

func TestImageRawPassthrough(t *testing.T) {
	path := writeRawImage(t, 20, 2, consts.SUBMODE_FORM2_BIT)
	img, err := OpenImage(path, nil)
	require.NoError(t, err)
	defer img.Close()

	c, err := classify.Probe(img, 0)
	require.NoError(t, err)
	assert.Equal(t, classify.Mode2Form2, c.Mode)
	assert.False(t, c.ISO9660)
}

func TestImageSectorOutOfRange(t *testing.T) {
	path := writeCookedImage(t, 17, "VOL")
	img, err := OpenImage(path, nil)
	require.NoError(t, err)
	defer img.Close()

	_, err = img.ReadRawSector(17)
	require.Error(t, err)
	_, err = img.ReadRawSector(-1)
	require.Error(t, err)
}

func TestDetectSectorSize(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		size    int64
		want    int64
		wantErr bool
	}{
		{"IsoCooked", "disc.iso", 20 * consts.COOKED_SECTOR_SIZE, consts.COOKED_SECTOR_SIZE, false},
		{"BinRaw", "disc.bin", 20 * consts.RAW_SECTOR_SIZE, consts.RAW_SECTOR_SIZE, false},
		{"RawBySize", "disc.img", 25 * consts.RAW_SECTOR_SIZE, consts.RAW_SECTOR_SIZE, false},
		{"BinNotDivisible", "disc.bin", 20*consts.RAW_SECTOR_SIZE + 7, 0, true},
		{"NoLayout", "disc.img", 12345, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := detectSectorSize(tt.path, tt.size)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
