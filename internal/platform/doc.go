// Package platform provides the filesystem operations whose behavior differs
// between operating systems. WriteFileAtomic replaces a file through a
// temporary sibling and a rename, so readers see either the old contents or
// the new ones. Permission bits are applied on Unix and ignored on Windows.
package platform
