package hashing

import (
	"crypto/sha256"
	"encoding/hex"
)

const (
	// StreamSeparator joins the per-stream digests of a dual-stream asset.
	StreamSeparator = "_"
	// LabelNoVideo stands in for the video digest when no video stream exists.
	LabelNoVideo = "NOVIDEO"
	// LabelNoAudio stands in for the audio digest when no audio stream exists.
	LabelNoAudio = "NOAUDIO"
)

// Sum returns the hex SHA-256 of exactly the given bytes, with no framing.
func Sum(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}

// Single digests a one-stream payload.
func Single(data []byte) Outcome {
	return FromDigest(Sum(data))
}

// DualStream digests video and audio independently and joins them. An absent
// stream contributes its fixed label instead of a digest, so "no audio" never
// collides with "empty audio content". Both streams absent yields a
// no-streams skip.
func DualStream(video []byte, hasVideo bool, audio []byte, hasAudio bool) Outcome {
	if !hasVideo && !hasAudio {
		return Skip(ReasonNoStreams, "no video or audio stream found")
	}
	videoPart := LabelNoVideo
	if hasVideo {
		videoPart = Sum(video)
	}
	audioPart := LabelNoAudio
	if hasAudio {
		audioPart = Sum(audio)
	}
	return FromDigest(videoPart + StreamSeparator + audioPart)
}
