package utils

import "math/rand/v2"

var interviewCovers = []string{
	"/adobe.png",
	"/amazon.png",
	"/facebook.png",
	"/hostinger.png",
	"/pinterest.png",
	"/quora.png",
	"/reddit.png",
	"/skype.png",
	"/spotify.png",
	"/telegram.png",
	"/tiktok.png",
	"/yahoo.png",
}

// RandomInterviewCover picks a cover image path for a new interview card.
func RandomInterviewCover() string {
	return "/covers" + interviewCovers[rand.IntN(len(interviewCovers))]
}
