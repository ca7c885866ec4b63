package resolution

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/rwcarlsen/goexif/exif"
)

// readMetadataDPI 读取文件内嵌的 DPI，仅作参考，读不到返回 0
func readMetadataDPI(format string, r io.ReadSeeker) float64 {
	switch format {
	case "JPG":
		return exifDPI(r)
	case "PNG":
		return pngDPI(r)
	default:
		return 0
	}
}

const (
	exifUnitInch       = 2
	exifUnitCentimeter = 3
)

func exifDPI(r io.Reader) float64 {
	x, err := exif.Decode(r)
	if err != nil {
		return 0
	}
	tag, err := x.Get(exif.XResolution)
	if err != nil {
		return 0
	}
	rat, err := tag.Rat(0)
	if err != nil {
		return 0
	}
	dpi, _ := rat.Float64()

	unit := exifUnitInch
	if t, err := x.Get(exif.ResolutionUnit); err == nil {
		if u, err := t.Int(0); err == nil {
			unit = u
		}
	}
	if unit == exifUnitCentimeter {
		dpi *= 2.54
	}
	return dpi
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// pngDPI 扫描 IDAT 之前的 chunk，取 pHYs 中的横向像素密度
func pngDPI(r io.ReadSeeker) float64 {
	sig := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(r, sig); err != nil || !bytes.Equal(sig, pngSignature) {
		return 0
	}

	var header [8]byte
	for i := 0; i < 64; i++ {
		if _, err := io.ReadFull(r, header[:]); err != nil {
			return 0
		}
		length := binary.BigEndian.Uint32(header[:4])
		typ := string(header[4:])

		switch typ {
		case "pHYs":
			if length != 9 {
				return 0
			}
			var body [9]byte
			if _, err := io.ReadFull(r, body[:]); err != nil {
				return 0
			}
			// unit 1 表示每米像素数
			if body[8] != 1 {
				return 0
			}
			return float64(binary.BigEndian.Uint32(body[:4])) * 0.0254
		case "IDAT", "IEND":
			return 0
		}

		if _, err := r.Seek(int64(length)+4, io.SeekCurrent); err != nil {
			return 0
		}
	}
	return 0
}
