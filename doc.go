// Package wavmeta reads production metadata from WAVE files without
// decoding audio.
//
// It understands plain RIFF/WAVE files as well as the 64-bit RF64 (EBU Tech
// 3306) and BW64 (ITU-R BS.2088) variants, and decodes the chunks broadcast
// and post-production tools leave behind: format, Broadcast Wave bext,
// cue markers with their labels and notes, sampler loops, LIST/INFO, ADM
// channel assignment (chna), Dolby metadata (dbmd) and embedded ID3 tags.
// iXML and axml documents are returned as raw bytes.
//
// # Quick Start
//
//	file, err := wavmeta.Open("take.wav")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	format, err := file.AudioFormat()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%d ch, %d Hz, %d bit\n",
//		format.ChannelCount, format.SampleRate, format.BitsPerSample)
//
// # Lazy Decoding
//
// Open reads the chunk tree once and nothing else. Each accessor (Broadcast,
// Cues, Dolby, ...) reads and decodes its chunk on every call, so a File holds
// only chunk offsets. An accessor returns nil and a nil error when its chunk
// is absent, and an error when the chunk is present but malformed.
//
// # Walking
//
// Walk flattens every known scope into (scope, name, value) fields, the
// shape used by the wavmeta command:
//
//	fields, warnings, err := file.Walk()
//	for _, f := range fields {
//		fmt.Println(f)
//	}
//
// A scope that fails to decode is reported as a Warning and skipped. With
// WithStrictParsing it fails the walk instead.
//
// # Text Encodings
//
// Older files store text in whatever code page the recording tool used.
// Defaults are latin_1 for INFO and cue text and ascii for bext; override them
// with WithInfoEncoding, WithCueEncoding and WithBextEncoding. Any IANA
// encoding name is accepted, plus the "cpNNNN" form.
//
// # Error Handling
//
// Errors are typed. Match them with errors.As:
//
//	var trunc *wavmeta.TruncatedError
//	if errors.As(err, &trunc) {
//		log.Printf("chunk %s cut short at %d", trunc.ID, trunc.Offset)
//	}
//
// A Dolby segment whose checksum does not match is not an error: it is kept
// with Valid set to false.
package wavmeta
