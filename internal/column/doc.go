// Package column parses the comma-separated "name:type" column list given to
// controller:generate and splits it into the two views the templates need:
// fillable attribute names for the model and schema-builder lines for the
// migration. Types are passed through verbatim as schema-builder method names.
package column
