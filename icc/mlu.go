package icc

import "unicode/utf16"

// MultiLocalizedUnicode is the decoded form of an mluc tag: a list of
// (language, country) -> string records.
type MultiLocalizedUnicode []LocalizedString

// LocalizedString is one language/country record of an mluc tag.
type LocalizedString struct {
	Language string // two ASCII letters, e.g. "en"
	Country  string // two ASCII letters, e.g. "US"
	Value    string
}

// Get returns the value for the given language/country pair, or "" with
// ok=false if no matching record exists.
func (m MultiLocalizedUnicode) Get(language, country string) (string, bool) {
	for _, e := range m {
		if e.Language == language && e.Country == country {
			return e.Value, true
		}
	}
	return "", false
}

// Any returns the first record's value, or "" if m is empty.
func (m MultiLocalizedUnicode) Any() string {
	if len(m) == 0 {
		return ""
	}
	return m[0].Value
}

// DecodeMLUC decodes an mluc tag payload.
func DecodeMLUC(data []byte) (MultiLocalizedUnicode, error) {
	if len(data) < 4 || Signature(getUint32(data, 0)) != TypeMultiLocalizedUTF8 {
		return nil, errUnexpectedType
	}
	if len(data) < 16 {
		return nil, errInvalidTagData
	}
	n := getUint32(data, 8)
	recordSize := getUint32(data, 12)
	if n == 0 || recordSize < 12 || uint64(len(data)) < 16+uint64(n)*uint64(recordSize) {
		return nil, errInvalidTagData
	}
	out := make(MultiLocalizedUnicode, n)
	for i := range out {
		base := 16 + int(i)*int(recordSize)
		language := string(data[base : base+2])
		country := string(data[base+2 : base+4])
		length := getUint32(data, base+4)
		offset := getUint32(data, base+8)
		start, end := uint64(offset), uint64(offset)+uint64(length)
		if end > uint64(len(data)) || length%2 != 0 {
			return nil, errInvalidTagData
		}
		units := make([]uint16, length/2)
		for j := range units {
			units[j] = getUint16(data, int(start)+2*j)
		}
		out[i] = LocalizedString{Language: language, Country: country, Value: string(utf16.Decode(units))}
	}
	return out, nil
}

// EncodeMLUC packs a single-record mluc tag for the given language,
// country and text, matching how the reference profile builder writes
// description and copyright tags (one record, "en"/"US" by convention).
func EncodeMLUC(language, country, value string) []byte {
	units := utf16.Encode([]rune(value))
	strBytes := make([]byte, len(units)*2)
	for i, u := range units {
		putUint16(strBytes, i*2, u)
	}

	const recordSize = 12
	header := 16
	buf := make([]byte, header+recordSize+len(strBytes))
	putUint32(buf, 0, uint32(TypeMultiLocalizedUTF8))
	putUint32(buf, 8, 1)
	putUint32(buf, 12, recordSize)
	copy(buf[16:18], language)
	copy(buf[18:20], country)
	putUint32(buf, 20, uint32(len(strBytes)))
	putUint32(buf, 24, uint32(header+recordSize))
	copy(buf[header+recordSize:], strBytes)
	return buf
}

// DecodeText decodes a legacy textType tag payload (an 8-byte header
// followed by a NUL-terminated ASCII string).
func DecodeText(data []byte) (string, error) {
	if len(data) < 8 || Signature(getUint32(data, 0)) != TypeText {
		return "", errUnexpectedType
	}
	start, end := 8, len(data)
	for end-1 > start && data[end-1] == 0 {
		end--
	}
	return string(data[start:end]), nil
}
