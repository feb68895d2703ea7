// Package weighting provides the K-weighting pre-filter used in front of the
// loudness meter: a high shelf of about +4 dB above 1.5 kHz cascaded with the
// revised low-frequency B-curve (RLB) high-pass.
//
// The filters are cookbook designs whose corner frequencies and Q values
// reproduce the BS.1770 48 kHz coefficients closely at any sample rate. The
// response is an approximation, adequate for relative loudness feedback, and
// not a certified meter front end.
package weighting
