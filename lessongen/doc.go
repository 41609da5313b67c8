// Package lessongen generates numbered Python study lessons with an LLM and
// a validate/fix loop built on the state-graph engine.
//
// The pipeline runs five nodes: load_context reads the domain's lesson
// template and existing lessons, generate_lesson asks the model for a new
// lesson, validate_lesson runs the Python quality toolchain on the result,
// fix_lesson feeds validation errors back to the model (bounded by the
// request's MaxIterations), and write_output commits the file with
// overwrite and path-traversal protection.
//
// Construct a [Pipeline] with [New] and execute it with [Pipeline.Run]:
//
//	pipeline, err := lessongen.New()
//	result, err := pipeline.Run(ctx, lessongen.Request{
//	    Topic:     "binary search",
//	    Domain:    "dsa",
//	    TargetDir: "src/algorithms",
//	})
package lessongen
