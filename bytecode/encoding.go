package bytecode

import (
	"math"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func mathFloat32frombits(bits uint32) float32 { return math.Float32frombits(bits) }

// decodeString decodes raw script-string bytes per the image's configured
// encoding. The String variant is UTF-8 internally regardless of source
// encoding (spec.md §4.C), so Shift-JIS and GBK content is transcoded
// through golang.org/x/text on load; only EncodingUTF8 passes the bytes
// through unchanged.
func decodeString(raw []byte, enc Encoding) string {
	var e encoding.Encoding
	switch enc {
	case EncodingShiftJIS:
		e = japanese.ShiftJIS
	case EncodingGBK:
		e = simplifiedchinese.GBK
	default:
		return string(raw)
	}
	out, err := e.NewDecoder().Bytes(raw)
	if err != nil {
		// The x/text decoders replace malformed bytes with U+FFFD rather
		// than failing; if one does return an error, keep the raw bytes
		// rather than aborting the whole image load.
		return string(raw)
	}
	return string(out)
}
