// ABOUTME: Character encoding detection and decoding for raw feed bytes
// ABOUTME: Tries BOM, XML declaration, HTTP header, then statistical sniffing

package encodingx

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var xmlDeclRe = regexp.MustCompile(`(?i)<\?xml[^>]*encoding\s*=\s*["']([^"']+)["']`)

// DetectCharset determines the character encoding of raw document bytes.
// declaredCharset comes from the transport layer (Content-Type charset
// parameter) and may be blank. The sniff is inconclusive-by-design friendly:
// when nothing matches we assume UTF-8 rather than failing.
func DetectCharset(raw []byte, declaredCharset string) string {
	// Byte order marks are authoritative.
	switch {
	case bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}):
		return "utf-8"
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		return "utf-16le"
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		return "utf-16be"
	}

	// The XML declaration beats the transport header; feeds get re-served
	// by proxies that rewrite headers but not documents.
	head := raw
	if len(head) > 1024 {
		head = head[:1024]
	}
	if m := xmlDeclRe.FindSubmatch(head); m != nil {
		return strings.ToLower(strings.TrimSpace(string(m[1])))
	}

	if declaredCharset != "" {
		return strings.ToLower(strings.TrimSpace(declaredCharset))
	}

	detector := chardet.NewTextDetector()
	if result, err := detector.DetectBest(raw); err == nil && result.Confidence > 50 {
		return strings.ToLower(result.Charset)
	}

	return "utf-8"
}

// DecodeToUTF8 converts raw bytes to UTF-8 using the given charset name.
// Unknown charsets and conversion failures fall back to treating the input
// as UTF-8 already; this function never fails.
func DecodeToUTF8(raw []byte, charsetName string) []byte {
	if charsetName == "" || strings.EqualFold(charsetName, "utf-8") ||
		strings.EqualFold(charsetName, "utf8") {
		return stripUTF8BOM(raw)
	}

	switch strings.ToLower(charsetName) {
	case "utf-16le":
		return decodeWith(raw, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder())
	case "utf-16be":
		return decodeWith(raw, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder())
	}

	enc, _ := charset.Lookup(charsetName)
	if enc == nil {
		return stripUTF8BOM(raw)
	}
	return decodeWith(raw, enc.NewDecoder())
}

func decodeWith(raw []byte, dec transform.Transformer) []byte {
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return stripUTF8BOM(raw)
	}
	return out
}

func stripUTF8BOM(raw []byte) []byte {
	return bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
}

// Normalize detects the charset and converts to UTF-8 in one step. The XML
// declaration is rewritten to match, so a downstream decoder does not apply
// the original charset a second time to already-converted bytes.
func Normalize(raw []byte, declaredCharset string) ([]byte, string) {
	cs := DetectCharset(raw, declaredCharset)
	return rewriteDeclaration(DecodeToUTF8(raw, cs)), cs
}

// rewriteDeclaration replaces a non-UTF-8 encoding pseudo-attribute in the
// XML declaration with utf-8. The bytes it annotates are UTF-8 by now.
func rewriteDeclaration(decoded []byte) []byte {
	head := decoded
	if len(head) > 1024 {
		head = head[:1024]
	}
	m := xmlDeclRe.FindSubmatchIndex(head)
	if m == nil {
		return decoded
	}
	declared := string(decoded[m[2]:m[3]])
	if strings.EqualFold(declared, "utf-8") || strings.EqualFold(declared, "utf8") {
		return decoded
	}
	out := make([]byte, 0, len(decoded)+len("utf-8"))
	out = append(out, decoded[:m[2]]...)
	out = append(out, "utf-8"...)
	out = append(out, decoded[m[3]:]...)
	return out
}
