// Package schema declares fields in YAML and builds them for a record type.
//
// A document lists fields in order:
//
//	fields:
//	  - name: id
//	    kind: uuid
//	    primary: true
//	  - name: title
//	    kind: string
//	    required: true
//	    validators:
//	      - min_length: 3
//	      - max_length: 120
//	  - name: homepage
//	    validators: [url]
//	  - name: tags
//	    list: true
//	    validators:
//	      - regex: {pattern: "^[a-z]+$", flags: [ignorecase]}
//
// Kind and validator names are case-folded, so "UUID", "Max-Length" and
// "max_length" are the same. Unknown keys, kinds, validators and regex flags
// are rejected, as are duplicate names and a second primary field.
//
// Build turns a parsed Document into a Schema[R] whose fields share the
// semantics of fields created directly with package field.
package schema
