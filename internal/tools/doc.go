// Package tools implements the workflow-facing operations of the plugin:
// sending a transactional email and orchestrating a bulk campaign. Each tool
// normalizes and validates its parameters, resolves attachment references,
// delegates delivery to the Blastengine sender, and reports a result the
// host can show as text or consume as structured data.
package tools
