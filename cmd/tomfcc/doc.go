// Command tomfcc converts audio files to mel-frequency cepstral coefficients.
//
// The file is decoded, mixed down to mono and cut into overlapping frames.
// Every frame is printed as one line of space separated values on stdout, in
// frame order. Silent frames print as -Inf. Logs go to stderr.
//
// Usage:
//
//	tomfcc [flags] <audio_file>
//
// Settings come from the defaults, then the YAML file named by --config,
// then any flag given explicitly on the command line:
//
//	tomfcc --config tomfcc.yaml --filters 40 --log-mel speech.flac
//
// Supported input formats: .wav, .flac, .mp3, .ogg, .aiff
package main
