package common

// QuillVersion is the current quill version as a string.
const QuillVersion string = "0.1.0"

// ProfileFileName is the default name for quill pipeline profile files.
const ProfileFileName string = "quill.toml"
