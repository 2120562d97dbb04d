// Package portfolio serves the static developer-portfolio dataset. The
// content is compiled in; there is no storage behind these endpoints.
package portfolio

// Meta is the site title and description.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Intro is the landing-page introduction block.
type Intro struct {
	Title       string            `json:"title"`
	Animated    map[string]string `json:"animated"`
	Description string            `json:"description"`
	ImageURL    string            `json:"your_img_url"`
}

// About is the about-me section.
type About struct {
	Title   string `json:"title"`
	AboutMe string `json:"aboutme"`
}

// WorkEntry is one timeline item.
type WorkEntry struct {
	JobTitle string `json:"jobtitle"`
	Where    string `json:"where"`
	Date     string `json:"date"`
}

// Skill is a named proficiency on a 0-100 scale.
type Skill struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Service is an offered service.
type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Project is one portfolio project.
type Project struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Img              string   `json:"img"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	Technologies     []string `json:"technologies"`
	Challenge        string   `json:"challenge"`
	Solution         string   `json:"solution"`
	Features         []string `json:"features"`
	DeployedLink     string   `json:"deployedLink"`
	GithubLink       string   `json:"githubLink"`
	IsDeployed       bool     `json:"isDeployed"`
	IsPublicRepo     bool     `json:"isPublicRepo"`
	Created          string   `json:"created"`
	Gallery          []string `json:"gallery"`
}

// Contact is the contact configuration block.
type Contact struct {
	Email       string `json:"YOUR_EMAIL"`
	Phone       string `json:"YOUR_FONE"`
	Description string `json:"description"`
}

// Data is the full portfolio payload.
type Data struct {
	Meta         Meta              `json:"meta"`
	DataAbout    About             `json:"dataabout"`
	Projects     []Project         `json:"dataportfolio"`
	WorkTimeline []WorkEntry       `json:"worktimeline"`
	Skills       []Skill           `json:"skills"`
	Services     []Service         `json:"services"`
	Intro        Intro             `json:"introdata"`
	Contact      Contact           `json:"contactConfig"`
	Social       map[string]string `json:"socialprofils"`
	LogoText     string            `json:"logotext"`
}

// LogoText is the site wordmark.
const LogoText = "Legha-gha Kang"

// SiteMeta is the site metadata.
var SiteMeta = Meta{
	Title:       "Legha-gha Kang",
	Description: "I'm Legha-gha Kang a Full stack devloper, currently working in Yaounde",
}

// IntroData is the landing introduction.
var IntroData = Intro{
	Title: "Web Developer",
	Animated: map[string]string{
		"first":  "I love coding",
		"second": "I code cool websites",
		"third":  "I develop web apps",
	},
	Description: "I am a highly motivated Full Stack Web Developer with a degree in Software Engineering (2022). My experience spans both backend and frontend development, equipping me with a comprehensive skill set to create dynamic, responsive, and efficient web applications.",
	ImageURL:    "https://images.unsplash.com/photo-1514790193030-c89d266d5a9d",
}

// AboutData is the about section.
var AboutData = About{
	Title:   "About Me",
	AboutMe: "I am a highly motivated Full Stack Web Developer with a degree in Software Engineering (2022). My experience spans both backend and frontend development, equipping me with a comprehensive skill set to create dynamic, responsive, and efficient web applications. With a strong background in teaching web development and programming, coupled with hands-on experience in building production-level applications, I am passionate about delivering seamless user experiences and designing scalable architectures. I am eager to leverage my full stack skills in a challenging development role that allows me to contribute effectively to innovative projects.",
}

// WorkTimeline lists past positions.
var WorkTimeline = []WorkEntry{
	{JobTitle: "Backend Developer", Where: "KitsAfriq Sarl", Date: "2021 - 2023"},
	{JobTitle: "Frontend Developer", Where: "Vmedia Yaounde", Date: "2023 - 2024"},
	{JobTitle: "Senior Frontend Developer", Where: "Trust Consulting", Date: "2024 - present"},
}

// Skills lists proficiencies.
var Skills = []Skill{
	{Name: "React", Value: 90},
	{Name: "Node.js", Value: 85},
	{Name: "Express", Value: 80},
	{Name: "Next.js", Value: 80},
	{Name: "MongoDB", Value: 85},
	{Name: "Typescript", Value: 90},
	{Name: "Javascript", Value: 90},
	{Name: "Reactflow", Value: 70},
	{Name: "GSAP", Value: 90},
	{Name: "Git", Value: 90},
	{Name: "Docker", Value: 70},
	{Name: "Django", Value: 85},
	{Name: "Python", Value: 85},
	{Name: "PostgreSQL", Value: 80},
	{Name: "Mapbox", Value: 75},
	{Name: "Lemon Squeezy", Value: 70},
}

// Services lists offered services.
var Services = []Service{
	{
		Title:       "Web Development",
		Description: "I develop web applications using React, Node.js, Express, MongoDB, Django, etc.",
	},
	{
		Title:       "Ecommerce Development with CMS",
		Description: "I develop ecommerce websites with CMS like Shopify, Wordpress, Wix, etc.",
	},
	{
		Title:       "Backend Development",
		Description: "I develop backend applications using Node.js, Express, MongoDB, Django, etc.",
	},
}

// Projects lists portfolio projects.
var Projects = []Project{
	{
		ID:               "ecocollect",
		Title:            "EcoCollect - Waste Management Platform",
		Img:              "https://images.unsplash.com/photo-1503596476-1c12a8ba09a9?q=80&w=400&h=400&auto=format&fit=crop",
		Description:      "A comprehensive full-stack waste management platform that connects users with waste collection services. Features subscription management, real-time tracking, driver assignment, and payment processing for a complete waste management ecosystem.",
		ShortDescription: "Full-stack waste management platform with real-time tracking",
		Technologies: []string{
			"MongoDB", "Express.js", "React", "Node.js", "TypeScript",
			"Tailwind CSS", "Mapbox", "Lemon Squeezy", "JWT Authentication",
		},
		Challenge: "Building a comprehensive waste management platform that handles multiple user roles (customers, admins, drivers), real-time location tracking, subscription management, payment processing, and efficient request assignment workflows while ensuring scalability and user experience.",
		Solution:  "Developed a full-stack MERN application with TypeScript for type safety. Implemented Mapbox for real-time location tracking and route optimization, Lemon Squeezy for secure payment processing, and JWT for authentication. Created role-based access control for different user types and real-time updates for request status tracking.",
		Features: []string{
			"Multi-role user system (Customers, Admins, Drivers)",
			"Waste collection request creation and management",
			"Real-time vehicle tracking with Mapbox integration",
			"Subscription management with recurring billing",
			"Secure payment processing via Lemon Squeezy",
			"Admin dashboard for request assignment and monitoring",
			"Driver mobile interface for task management",
			"Real-time notifications and status updates",
			"Route optimization for efficient collection",
			"Customer subscription history and billing",
			"Responsive design for mobile and desktop",
			"JWT-based authentication and authorization",
		},
		DeployedLink: "https://eco-collect-omega.vercel.app/",
		GithubLink:   "https://github.com/Sculptor97/trashapp-frontend",
		IsDeployed:   true,
		IsPublicRepo: true,
		Created:      "2025-09-23",
		Gallery:      []string{},
	},
	{
		ID:               "eld-log",
		Title:            "ELD Log Route Planning System",
		Img:              "https://images.unsplash.com/photo-1711942179703-fce59b6afac6?q=80&w=400&h=700&auto=format&fit=crop",
		Description:      "A comprehensive full-stack application for commercial drivers that generates route instructions and automated ELD (Electronic Logging Device) logs based on trip details, ensuring compliance with DOT regulations",
		ShortDescription: "Full-stack ELD log and route planning system for commercial drivers",
		Technologies: []string{
			"Django", "React", "TypeScript", "PostgreSQL", "Mapbox API",
			"OpenRouteService API", "Turf.js", "html2canvas", "jsPDF",
		},
		Challenge: "Building a complex full-stack application that takes trip details as inputs and generates accurate route instructions with automated ELD logs, ensuring compliance with DOT regulations (70hrs/8days cycle) while providing an intuitive user interface for commercial drivers.",
		Solution:  "Developed a Django REST API backend with PostgreSQL database for robust data management. Created a React frontend with TypeScript for type safety and better development experience. Integrated Mapbox for interactive mapping, OpenRouteService for route optimization, and Turf.js for spatial analysis. Implemented html2canvas and jsPDF for generating printable ELD log sheets.",
		Features: []string{
			"Interactive route planning with real-time map visualization",
			"Automated ELD log generation with DOT compliance (70hrs/8days cycle)",
			"Trip input system (current location, pickup, dropoff, current cycle hours)",
			"Route optimization with rest stops and fueling stations",
		},
		IsDeployed:   false,
		IsPublicRepo: false,
		Created:      "2025-06-12",
		Gallery:      []string{},
	},
}

// ContactConfig is the contact block.
var ContactConfig = Contact{
	Email:       "leghagha.kang@gmail.com",
	Phone:       "+237 6 70 00 00 00",
	Description: "Reach out for collaborations, contracts, or just to say hello.",
}

// SocialProfiles maps network names to profile URLs.
var SocialProfiles = map[string]string{
	"github":   "https://github.com/Sculptor97",
	"linkedin": "https://www.linkedin.com/in/legha-gha-kang",
	"twitter":  "https://twitter.com/leghagha",
}

// Full assembles the complete payload.
func Full() Data {
	return Data{
		Meta:         SiteMeta,
		DataAbout:    AboutData,
		Projects:     Projects,
		WorkTimeline: WorkTimeline,
		Skills:       Skills,
		Services:     Services,
		Intro:        IntroData,
		Contact:      ContactConfig,
		Social:       SocialProfiles,
		LogoText:     LogoText,
	}
}

// ProjectByID returns the project with the given ID, or nil.
func ProjectByID(id string) *Project {
	for i := range Projects {
		if Projects[i].ID == id {
			return &Projects[i]
		}
	}
	return nil
}
