package quill

// FormatErr means the image archive itself is malformed: a missing or
// duplicated manifest record, or a layer entry that makes no sense.
type FormatErr struct {
	error
}

// PermissionErr means the process lacks the privileges needed to write
// arbitrary ownership and device nodes.
type PermissionErr struct {
	error
}

// AlreadyExistsErr means the destination path already exists.
type AlreadyExistsErr struct {
	error
}

func NewFormatErr(err error) error {
	return &FormatErr{err}
}

func NewPermissionErr(err error) error {
	return &PermissionErr{err}
}

func NewAlreadyExistsErr(err error) error {
	return &AlreadyExistsErr{err}
}
