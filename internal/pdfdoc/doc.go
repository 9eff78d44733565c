// Package pdfdoc decodes a source document into the two views the parser
// needs: a linear line sequence, and a word layer annotated with
// horizontal and vertical position for the column clusterer.
package pdfdoc
