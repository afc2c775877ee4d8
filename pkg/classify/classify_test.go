package classify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgrewell/disc-kit/pkg/consts"
)

type fakeReader struct {
	sectors map[int32][]byte
	err     error
}

func (f *fakeReader) ReadRawSector(sector int32) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	raw, ok := f.sectors[sector]
	if !ok {
		return nil, errors.New("no such sector")
	}
	return raw, nil
}

// rawSector builds a raw sector with the given mode and submode bytes.
func rawSector(mode, submode byte) []byte {
	raw := make([]byte, consts.RAW_SECTOR_SIZE)
	raw[consts.MODE_BYTE_OFFSET] = mode
	raw[consts.SUBMODE_BYTE_OFFSET] = submode
	return raw
}

// plantDescriptor writes an ISO9660 volume descriptor header plus
// identifiers at the given payload offset.
func plantDescriptor(raw []byte, payload int, systemID, volumeID string) {
	copy(raw[payload+1:], consts.ISO9660_STD_IDENTIFIER)
	for i := 0; i < consts.ISO9660_IDENTIFIER_SIZE; i++ {
		raw[payload+consts.ISO9660_SYSTEM_ID_OFFSET+i] = ' '
		raw[payload+consts.ISO9660_VOLUME_ID_OFFSET+i] = ' '
	}
	copy(raw[payload+consts.ISO9660_SYSTEM_ID_OFFSET:], systemID)
	copy(raw[payload+consts.ISO9660_VOLUME_ID_OFFSET:], volumeID)
}

func TestProbeSector(t *testing.T) {
	require.Equal(t, int32(16), ProbeSector(0))
	require.Equal(t, int32(42016), ProbeSector(42000))
}

func TestProbeMode1WithSignature(t *testing.T) {
	raw := rawSector(1, 0)
	plantDescriptor(raw, consts.MODE1_PAYLOAD_OFFSET, "LINUX", "MY_DISC")
	r := &fakeReader{sectors: map[int32][]byte{42016: raw}}

	c, err := Probe(r, 42000)
	require.NoError(t, err)
	assert.Equal(t, Mode1, c.Mode)
	assert.True(t, c.ISO9660)
	assert.Equal(t, "LINUX", c.SystemID)
	assert.Equal(t, "MY_DISC", c.VolumeID)
}

func TestProbeMode2Forms(t *testing.T) {
	t.Run("Form2WhenSubmodeBitSet", func(t *testing.T) {
		raw := rawSector(2, consts.SUBMODE_FORM2_BIT)
		r := &fakeReader{sectors: map[int32][]byte{16: raw}}

		c, err := Probe(r, 0)
		require.NoError(t, err)
		assert.Equal(t, Mode2Form2, c.Mode)
		assert.False(t, c.ISO9660)
	})

	t.Run("Form1WhenSubmodeBitClear", func(t *testing.T) {
		raw := rawSector(2, 0)
		plantDescriptor(raw, consts.MODE2_PAYLOAD_OFFSET, "PLAYSTATION", "GAME")
		r := &fakeReader{sectors: map[int32][]byte{16: raw}}

		c, err := Probe(r, 0)
		require.NoError(t, err)
		assert.Equal(t, Mode2Form1, c.Mode)
		assert.True(t, c.ISO9660)
		assert.Equal(t, "PLAYSTATION", c.SystemID)
	})

	t.Run("AnyNonZeroModeByteIsMode2", func(t *testing.T) {
		raw := rawSector(0x7F, 0)
		r := &fakeReader{sectors: map[int32][]byte{16: raw}}

		c, err := Probe(r, 0)
		require.NoError(t, err)
		assert.Equal(t, Mode2Form1, c.Mode)
	})
}

func TestProbeModeZeroSkipsSignature(t *testing.T) {
	// A planted signature must not be found: with a zero mode byte no
	// payload offset is defined and the signature test is skipped.
	raw := rawSector(0, 0)
	plantDescriptor(raw, consts.MODE1_PAYLOAD_OFFSET, "X", "Y")
	plantDescriptor(raw, consts.MODE2_PAYLOAD_OFFSET, "X", "Y")
	r := &fakeReader{sectors: map[int32][]byte{16: raw}}

	c, err := Probe(r, 0)
	require.NoError(t, err)
	assert.Equal(t, ModeUnknown, c.Mode)
	assert.False(t, c.ISO9660)
	assert.Empty(t, c.SystemID)
	assert.Empty(t, c.VolumeID)
}

func TestProbeSignatureIsExactMatch(t *testing.T) {
	for i := 0; i < len(consts.ISO9660_STD_IDENTIFIER); i++ {
		raw := rawSector(1, 0)
		plantDescriptor(raw, consts.MODE1_PAYLOAD_OFFSET, "SYS", "VOL")
		// corrupt one signature byte at a time
		raw[consts.MODE1_PAYLOAD_OFFSET+1+i] ^= 0xFF
		r := &fakeReader{sectors: map[int32][]byte{16: raw}}

		c, err := Probe(r, 0)
		require.NoError(t, err)
		assert.False(t, c.ISO9660, "byte %d", i)
		assert.Empty(t, c.SystemID)
	}
}

func TestProbeReadFailure(t *testing.T) {
	readErr := errors.New("medium error")
	r := &fakeReader{err: readErr}

	c, err := Probe(r, 150)
	require.Nil(t, c)
	require.ErrorIs(t, err, readErr)
}

func TestProbeShortRead(t *testing.T) {
	r := &fakeReader{sectors: map[int32][]byte{16: make([]byte, 512)}}

	_, err := Probe(r, 0)
	require.Error(t, err)
}

func TestModeString(t *testing.T) {
	require.Equal(t, "mode 1", Mode1.String())
	require.Equal(t, "mode 2/form 1", Mode2Form1.String())
	require.Equal(t, "mode 2/form 2", Mode2Form2.String())
	require.Equal(t, "unknown", ModeUnknown.String())
}

func TestSectorReadError(t *testing.T) {
	inner := errors.New("io failure")
	err := &SectorReadError{Track: 2, Sector: 42016, Err: inner}
	require.ErrorIs(t, err, inner)
	require.Contains(t, err.Error(), "track 2")
	require.Contains(t, err.Error(), "42016")
}
