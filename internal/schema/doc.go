// Package schema validates configuration documents against the embedded
// JSON Schema in schema/config.schema.json. It covers the structural rules
// (required sections, agent models, string paths); filesystem checks live
// with the store.
package schema
