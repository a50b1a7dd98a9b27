// Package attachments resolves workflow-host file references into email
// attachments and validates them against the delivery API's limits.
//
// A reference is either a plain filesystem path or an s3:// URL. Resolution
// reads the file content into memory; handles are held only for the duration
// of a single Resolve call and are always released, whatever the outcome.
//
// # Usage
//
//	resolver := attachments.NewResolver(attachments.Config{})
//	files, err := attachments.ResolveAll(ctx, resolver, refs)
//	if err != nil {
//		// validation or fetch failure, nothing was sent
//	}
//
// ResolveAll validates the resolved set before returning it: at most
// MaxCount files, combined size within MaxTotalBytes, and no blocklisted
// extensions. Validation failures happen before any remote delivery call.
//
// # MIME detection
//
// Content types are inferred from the filename extension first, then sniffed
// from the leading content bytes, falling back to application/octet-stream.
package attachments
