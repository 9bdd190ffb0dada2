package content

// Profile copy. About is markdown, rendered through RenderMarkdown.
var (
	OwnerName = "Sanket Debnath"

	Headline = "Mern Stack Developer"

	Tagline = `Building innovative web applications and cloud solutions.
	Specializing in React, Node.js, and AWS architecture.`

	AboutTitle = "Full Stack Developer & Cloud Solutions Architect"

	AboutMe = `Hello! I'm **Sanket Debnath**, a passionate Full Stack Developer with expertise in building
scalable web applications and cloud-native solutions.

I am pursuing a Bachelor's degree in Computer Science and Engineering from University Institute of
Technology, Burdwan University. My journey in technology has equipped me with a strong foundation in
software engineering principles and modern development practices.`

	Highlights = []string{
		"React & Next.js",
		"Node.js & Express",
		"JavaScript",
		"AWS & Azure",
	}
)

// Contact details shown next to the form.
var (
	ContactEmail    = "sanketdebnath73@gmail.com"
	ContactLocation = "Barasat, Kolkata, West Bengal, India"

	Socials = []Link{
		{Label: "LinkedIn", URL: "https://www.linkedin.com/in/sanket-debnath-286b05292"},
		{Label: "GitHub", URL: "https://github.com/Sanket-cp"},
	}

	ResumeFileName = "Sanket_Debnath_Resume.pdf"
)
