// Package manifest persists which agents are installed for a project.
//
// The manifest is a small JSON document stored next to the generated agent
// files:
//
//	{
//	  "platform": "cursor",
//	  "agents": {
//	    "blue-react-developer": "1.5.0",
//	    "blue-security-specialist": "1.4.0"
//	  }
//	}
//
// Saves always replace the whole file through a temp file and rename, so an
// interrupted run leaves either the previous manifest or the new one. Loads
// check the document against an embedded JSON Schema.
package manifest
