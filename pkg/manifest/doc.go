/*
Package manifest loads YAML resource files for hutch apply.

A manifest file holds one or more documents of kind Events (a list of
typed events) or Statements (a list of SQL strings, each emitted as a
sql event). Apply feeds them through a runner in document order.
*/
package manifest
