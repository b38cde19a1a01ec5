// Package meta holds the in-memory symbol model: identifiers, references,
// locations and the five entity kinds (Namespace, Record, Function, Enum,
// Typedef) with their substructures.
//
// Entities are decoded per unit as partial views and folded into canonical
// entities by package merge.
package meta
