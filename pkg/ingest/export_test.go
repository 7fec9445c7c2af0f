package ingest

// EncodeUTF16ForTest exposes the UTF-16 fixture encoder to external tests,
// which use it to prove encoding-independent ingestion.
func EncodeUTF16ForTest(s string) []byte {
	return encodeUTF16(s, false, true)
}
