// Package task defines the closed set of unit-of-work descriptors a
// validation run fans out over.
//
// Tasks are produced by the dataset loader, are read-only, independent of
// each other and side-effect-free to evaluate. Kind-specific dispatch
// happens exactly once, in the engine's executor, instead of branching at
// every call site.
package task

// Kind identifies a task variant.
type Kind int

const (
	// KindJSON validates a parsed JSON document against a named schema.
	KindJSON Kind = iota
	// KindLogo validates a logo image's name, format and dimensions.
	KindLogo
	// KindFolder checks a folder name against a field of its JSON file.
	KindFolder
)

// String returns the kind name for logs.
func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindLogo:
		return "logo"
	case KindFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// Task describes one unit of validation work. Exactly the fields of its
// Kind are set; the rest stay zero.
type Task struct {
	Kind Kind

	// Path labels the source file or directory in findings.
	Path string

	// KindJSON: the parsed document and the logical schema name it must
	// satisfy.
	Document   any
	SchemaName string

	// KindLogo: the file's basename, its raw bytes (empty when the file
	// was missing on disk) and the name declared in the owning JSON
	// document, if any.
	Filename     string
	Data         []byte
	DeclaredName string

	// KindFolder: the folder's actual name, the JSON document that names
	// it (shared with the corresponding KindJSON task, nil when the file
	// was missing on disk) and the document key holding the expected
	// name. Filename carries the JSON file's name here too.
	FolderName string
	JSONKey    string
}

// JSON builds a schema-check task.
func JSON(path, schemaName string, document any) Task {
	return Task{Kind: KindJSON, Path: path, SchemaName: schemaName, Document: document}
}

// Logo builds a logo-check task.
func Logo(path, filename string, data []byte, declaredName string) Task {
	return Task{Kind: KindLogo, Path: path, Filename: filename, Data: data, DeclaredName: declaredName}
}

// Folder builds a folder-name-check task. document is nil when jsonFile
// was missing from the folder.
func Folder(path, folderName string, document any, jsonFile, jsonKey string) Task {
	return Task{Kind: KindFolder, Path: path, FolderName: folderName, Document: document, Filename: jsonFile, JSONKey: jsonKey}
}
