package langfile

import (
    "bytes"
    "unicode/utf8"

    "golang.org/x/text/encoding"
    "golang.org/x/text/encoding/charmap"
    "golang.org/x/text/encoding/unicode"
)

// Decode converts raw file bytes into UTF-8 text and reports the source
// encoding. A byte-order mark selects UTF-8 or UTF-16; otherwise valid UTF-8
// is used as is and anything else is read as ISO-8859-1.
func Decode(data []byte) (string, string, error) {
    switch {
    case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
        return string(data[3:]), "utf-8", nil
    case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
        return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), data, "utf-16le")
    case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
        return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.UseBOM), data, "utf-16be")
    case utf8.Valid(data):
        return string(data), "utf-8", nil
    default:
        return decodeWith(charmap.ISO8859_1, data, "iso-8859-1")
    }
}

func decodeWith(enc encoding.Encoding, data []byte, name string) (string, string, error) {
    out, err := enc.NewDecoder().Bytes(data)
    if err != nil {
        return "", name, err
    }
    return string(out), name, nil
}
