package content

var projects = []Project{
	{
		ID:          1,
		Title:       "Social Connect App",
		Description: "A full-featured social media platform with real-time messaging, profile customization, and content sharing. Built with React, Node.js, and WebSockets for seamless communication.",
		Tags:        []string{"React", "Node.js", "MongoDB", "WebSockets"},
		Image:       "https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?auto=format&fit=crop&w=800&q=80",
		LiveURL:     "https://ephemeral-mu.vercel.app/",
		SourceURL:   "https://github.com/Sanket-cp/ephemeral",
	},
	{
		ID:          2,
		Title:       "Weather Dashboard",
		Description: "A simple weather application that provides real-time forecasts, location-based weather data, and interactive maps. Uses OpenWeather API and Leaflet for mapping.",
		Tags:        []string{"Next.js", "TypeScript", "Tailwind CSS", "REST API"},
		Image:       "https://images.unsplash.com/photo-1488590528505-98d2b5aba04b?auto=format&fit=crop&w=800&q=80",
		LiveURL:     "https://weather-app-woad-omega-35.vercel.app/",
		SourceURL:   "https://github.com/Sanket-cp/Weather-App",
	},
	{
		ID:          3,
		Title:       "Task Manager",
		Description: "A minimalist task management application featuring drag-and-drop interfaces, priority labeling, and deadline reminders. Includes local storage for offline usage.",
		Tags:        []string{"React", "Redux", "Local Storage", "Drag-and-Drop"},
		Image:       "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d?auto=format&fit=crop&w=800&q=80",
		LiveURL:     "https://task-forage.vercel.app/",
		SourceURL:   "https://github.com/Sanket-cp/TaskForage",
	},
	{
		ID:          4,
		Title:       "E-commerce Platform",
		Description: "A complete e-commerce solution with product listings, shopping cart, secure checkout, and order management. Integrated with payment gateways and shipping APIs.",
		Tags:        []string{"React", "Node.js", "MongoDB", "Stripe API"},
		Image:       "https://images.unsplash.com/photo-1487058792275-0ad4aaf24ca7?auto=format&fit=crop&w=800&q=80",
		LiveURL:     "https://sleek-shop-six.vercel.app/",
		SourceURL:   "https://github.com/Sanket-cp/sleek-shop",
	},
	{
		ID:          5,
		Title:       "Health Assistant",
		Description: "An AI Health Assistant offering personalized medical guidance, emergency support, nearby doctor and pharmacy finder, ambulance access, and insurance assistance, all in one smart platform.",
		Tags:        []string{"React Js", "Stripe API", "Express.js", "Health API"},
		Image:       "https://images.unsplash.com/photo-1526374965328-7f61d4dc18c5?auto=format&fit=crop&w=800&q=80",
		LiveURL:     "https://health-assistant-phi.vercel.app/",
		SourceURL:   "https://github.com/Sanket-cp/HEALTH-ASSISTANT",
	},
	{
		ID:          6,
		Title:       "E-Learning Platform",
		Description: "An educational platform offering engaging courses, real-time collaboration, and personalized learning experiences for students and professionals.",
		Tags:        []string{"React.js", "Node.js", "MongoDb", "Express.js"},
		Image:       "https://images.unsplash.com/photo-1485827404703-89b55fcc595e?auto=format&fit=crop&w=800&q=80",
		LiveURL:     "https://eduscape-iota.vercel.app/",
		SourceURL:   "https://github.com/Sanket-cp/Eduscape",
	},
}

var skills = []Skill{
	{Name: "React", Level: 90, Category: Frontend},
	{Name: "Next.js", Level: 85, Category: Frontend},
	{Name: "TypeScript", Level: 88, Category: Frontend},
	{Name: "JavaScript", Level: 92, Category: Frontend},
	{Name: "HTML & CSS", Level: 90, Category: Frontend},
	{Name: "Tailwind CSS", Level: 85, Category: Frontend},

	{Name: "Node.js", Level: 88, Category: Backend},
	{Name: "Express", Level: 85, Category: Backend},
	{Name: "MongoDB", Level: 82, Category: Backend},

	{Name: "AWS", Level: 85, Category: Tools},
	{Name: "Git", Level: 90, Category: Tools},
	{Name: "Testing", Level: 80, Category: Tools},
	{Name: "VScode", Level: 80, Category: Tools},
}
