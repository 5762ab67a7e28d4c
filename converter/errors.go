package converter

import "errors"

// ErrInvalidPackage marks input that is not a usable DOCX container: either
// the bytes are not a ZIP archive, or the archive lacks word/document.xml.
// Callers match it with errors.Is. All other malformed parts are recovered
// locally and never surface as errors.
var ErrInvalidPackage = errors.New("invalid docx package")
