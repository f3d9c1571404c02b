// Package crx decodes signed browser-extension packages (CRX format),
// exposes the embedded archive as a navigable tree, and prepares
// decoded contents for concurrent pattern search.
//
// A package is a versioned binary header followed by a standard ZIP
// archive. [Parse] runs the whole decoding pipeline in one call:
//
//	pkg, err := crx.Parse(data)
//	if err != nil {
//	    return err
//	}
//	content, err := pkg.ReadFile("manifest.json")
//
// The lower stages are exposed individually for callers that want them:
// [ParseHeader] locates the payload, [ExtractPayload] validates it, the
// [archive] subpackage enumerates members, and the [tree] subpackage
// assembles the hierarchy.
//
// # Searching
//
// The [pattern] subpackage compiles name filters and content queries;
// the [search] subpackage scans decoded files as a cancellable
// background task with progress events. [Package.Contents] bulk-decodes
// members into the scan's input shape:
//
//	pat, err := pattern.CompileContent("todo", pattern.ContentOptions{})
//	if err != nil {
//	    return err
//	}
//	files, err := pkg.Contents(ctx, nil)
//	if err != nil {
//	    return err
//	}
//	task := search.NewSession().Start("", pat, files)
//	for ev := range task.Events() {
//	    // progress, then complete or error
//	}
//
// # Filesystem access
//
// A Package implements [io/fs.FS], [io/fs.StatFS], [io/fs.ReadFileFS],
// and [io/fs.ReadDirFS], so the decoded archive works with standard
// library tooling such as fs.WalkDir.
package crx
