package razerhid

// ReportLength is the size of a Razer control report, excluding the HID report ID
const ReportLength = 90

const argsLength = 80

// report is the Razer USB control message laid out as
// status, transaction id, remaining packets (2), protocol type, data size,
// command class, command id, 80 argument bytes, crc, reserved
type report struct {
	class byte
	id    byte
	size  byte
	args  [argsLength]byte
}

func newReport(class, id, size byte) *report {
	return &report{class: class, id: id, size: size}
}

// bytes serialises the report and computes its checksum
func (r *report) bytes() []byte {
	buf := make([]byte, ReportLength)
	buf[0] = 0x00 // status: new command
	buf[1] = 0xFF // transaction id
	buf[5] = r.size
	buf[6] = r.class
	buf[7] = r.id
	copy(buf[8:8+argsLength], r.args[:])
	buf[88] = crc(buf)
	return buf
}

// crc XORs bytes 2 through 87
func crc(buf []byte) byte {
	var c byte
	for i := 2; i < 88; i++ {
		c ^= buf[i]
	}
	return c
}

// Command encodings for the standard and extended matrix protocols
func setRowReport(extended bool, row, start, end int, rgb []byte) *report {
	if extended {
		r := newReport(0x0F, 0x03, 0x47)
		r.args[2] = byte(row)
		r.args[3] = byte(start)
		r.args[4] = byte(end)
		copy(r.args[5:], rgb)
		return r
	}
	r := newReport(0x03, 0x0B, 0x46)
	r.args[0] = 0xFF
	r.args[1] = byte(row)
	r.args[2] = byte(start)
	r.args[3] = byte(end)
	copy(r.args[4:], rgb)
	return r
}

func customEffectReport(extended bool) *report {
	if extended {
		r := newReport(0x0F, 0x02, 0x0C)
		r.args[2] = 0x08
		return r
	}
	r := newReport(0x03, 0x0A, 0x02)
	r.args[0] = 0x05
	return r
}

// maxRowColumns is how many RGB triplets fit in one set-row report
func maxRowColumns(extended bool) int {
	if extended {
		return (argsLength - 5) / 3
	}
	return (argsLength - 4) / 3
}
