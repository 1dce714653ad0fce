package platform

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// GenericMIMEType is what pickers report when they do not know the type
const GenericMIMEType = "application/octet-stream"

// DetectMIMEType returns the content type for a picked file. A specific
// declared type wins, then the file extension, then content sniffing.
func DetectMIMEType(name, declared string, content []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != GenericMIMEType {
		return declared
	}

	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		// Drop parameters such as "; charset=utf-8"
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
		return byExt
	}

	if len(content) > 0 {
		sniffed := http.DetectContentType(content)
		if mediaType, _, err := mime.ParseMediaType(sniffed); err == nil {
			return mediaType
		}
		return sniffed
	}

	return GenericMIMEType
}
