// Package spatial provides the stereo-image processors of the mastering
// rack: mid/side helpers, a broadband [Width] control, a [MidSideEQ] and the
// three-band [Imager].
//
// All processors operate on the first two channels of a frame. Frames with
// fewer than two channels pass through untouched.
package spatial
