package consts

const (
	// Number of frames (sectors) in one second of disc time. Redbook MSF
	// addressing subdivides every second into 75 frames.
	FRAMES_PER_SECOND = 75

	// Number of seconds in one minute of disc time.
	SECONDS_PER_MINUTE = 60

	// Size of one raw sector as returned by the drive, including sync,
	// header, subheader and error correction bytes.
	RAW_SECTOR_SIZE = 2352

	// Size of the user data payload of a Mode 1 or Mode 2 Form 1 sector.
	COOKED_SECTOR_SIZE = 2048

	// Control bit marking a TOC entry as a data track.
	DATA_TRACK_CONTROL = 0x04

	// Sentinel track number addressing the disc lead-out.
	LEADOUT_TRACK = 0xAA

	// Number of sectors between the start of a data track and the sector
	// sampled for classification. The first 16 sectors of a data track
	// form the system area.
	PROBE_OFFSET_SECTORS = 16

	// Byte offset of the mode field within a raw data sector.
	MODE_BYTE_OFFSET = 0x0F

	// Byte offset of the Mode 2 submode field. Bit 0x20 distinguishes
	// Form 2 from Form 1.
	SUBMODE_BYTE_OFFSET = 0x12
	SUBMODE_FORM2_BIT   = 0x20

	// User data payload offsets for the recognized sector modes.
	MODE1_PAYLOAD_OFFSET = 0x10
	MODE2_PAYLOAD_OFFSET = 0x18

	// Standard ISO9660 identifier, found one byte into a volume descriptor.
	ISO9660_STD_IDENTIFIER = "CD001"

	// Offsets of the system and volume identifier fields relative to the
	// start of a volume descriptor, and their fixed width.
	ISO9660_SYSTEM_ID_OFFSET = 8
	ISO9660_VOLUME_ID_OFFSET = 40
	ISO9660_IDENTIFIER_SIZE  = 32

	// Highest track number the TOC can describe.
	MAX_TRACKS = 99
)
