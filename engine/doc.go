// Package engine hosts one mastering signal path: an effect chain built
// from a rack, a path-level loudness meter and a spectrum analyser.
//
// Real-time hosts call [Engine.Process] from their audio callback and
// [Engine.UpdateRack] or [Engine.SetParameter] from the control side.
// Rack updates are serialised with processing; parameter edits are not and
// never block. [Engine.Render] runs the identical per-sample code over a
// whole buffer, so an offline render matches a real-time pass with the
// same scheduled automation sample for sample.
package engine
