package semconv

// Compilation
const (
	// Random ID assigned to a single compile call. Shared by all stages of that call.
	CompilationID = "compilation_id"

	// Name of the pipeline stage: tokenize, parse, transform or generate.
	Stage = "stage"
)

const (
	// Path of the input file. Empty when reading from stdin.
	InputFile = "input_file"

	// Path the generated output is written to.
	OutputFile = "output_file"
)

// Sizes
const (
	InputBytes  = "input_bytes"
	OutputBytes = "output_bytes"
	TokenCount  = "token_count"
)
