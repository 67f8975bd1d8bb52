package seed

import "github.com/GameXcalibur/LynxATS/internal/model"

const (
	companyOverview = "LynxATS is a fast-growing HR-tech startup building the next generation of applicant tracking systems."
	resumeURL       = "https://res.cloudinary.com/demo/raw/upload/sample_resume.pdf"
	passportURL     = "https://res.cloudinary.com/demo/image/upload/sample.jpg"
	coverLetterURL  = "https://res.cloudinary.com/demo/raw/upload/sample_cover.pdf"
)

// Users are the reviewers. Their ids stand in for identity provider ids.
var Users = []model.User{
	{
		ID:        "seed_user_001",
		Username:  "sarah_chen",
		Name:      "Sarah Chen",
		Bio:       "Head of Talent Acquisition with 8+ years of experience in tech recruiting.",
		Image:     "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=200",
		Onboarded: true,
	},
	{
		ID:        "seed_user_002",
		Username:  "james_okafor",
		Name:      "James Okafor",
		Bio:       "Engineering Manager leading the platform team. Passionate about building great teams.",
		Image:     "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=200",
		Onboarded: true,
	},
	{
		ID:        "seed_user_003",
		Username:  "maria_garcia",
		Name:      "Maria Garcia",
		Bio:       "VP of People Operations. Focused on scaling culture alongside growth.",
		Image:     "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=200",
		Onboarded: true,
	},
}

// Jobs are posted by Users[jobAuthors[i]].
var Jobs = []model.EditableJobInfo{
	{
		JobTitle:         "Senior Frontend Engineer",
		JobDescription:   "We are looking for a Senior Frontend Engineer to lead the development of our customer-facing web application. You will architect scalable React components, mentor junior developers, and collaborate closely with design and product teams to deliver polished user experiences.",
		TeamDept:         "Engineering",
		Location:         "San Francisco, CA",
		JobType:          "Full-Time",
		YrsOfExp:         "5+",
		CompanyOverview:  companyOverview + " We believe hiring should be simple, transparent, and fair.",
		Qualifications:   "5+ years of experience with React/Next.js, strong TypeScript skills, experience with design systems, familiarity with testing frameworks (Jest, Cypress), excellent communication skills.",
		Deadline:         "2026-04-15",
		EmploymentStatus: model.EmploymentFullTime,
		WorkplaceTypes:   model.WorkplaceHybrid,
		ApplicationRequirement: model.ApplicationRequirement{
			Name: true, Email: true, Mobile: true, Linkedin: true, PortfolioWorkSample: true,
		},
	},
	{
		JobTitle:         "Backend Engineer",
		JobDescription:   "Join our backend team to build robust APIs and services that power the LynxATS platform. You will design database schemas, implement RESTful and GraphQL endpoints, and ensure our infrastructure scales to support thousands of concurrent users.",
		TeamDept:         "Engineering",
		Location:         "New York, NY",
		JobType:          "Full-Time",
		YrsOfExp:         "3+",
		CompanyOverview:  companyOverview,
		Qualifications:   "3+ years with Node.js or Python, MongoDB/PostgreSQL experience, understanding of RESTful API design, experience with cloud services (AWS/GCP), strong problem-solving skills.",
		Deadline:         "2026-04-01",
		EmploymentStatus: model.EmploymentFullTime,
		WorkplaceTypes:   model.WorkplaceRemote,
		ApplicationRequirement: model.ApplicationRequirement{
			Name: true, Email: true, Mobile: true,
		},
	},
	{
		JobTitle:         "Product Designer",
		JobDescription:   "We need a Product Designer to own the end-to-end design process for key features in our ATS platform. From user research and wireframing to high-fidelity prototypes and design system maintenance, you will shape how recruiters and candidates interact with LynxATS.",
		TeamDept:         "Design",
		Location:         "Austin, TX",
		JobType:          "Full-Time",
		YrsOfExp:         "4+",
		CompanyOverview:  companyOverview,
		Qualifications:   "4+ years of product design experience, proficiency in Figma, portfolio demonstrating end-to-end design work, experience with user research and usability testing, understanding of accessibility standards.",
		Deadline:         "2026-03-20",
		EmploymentStatus: model.EmploymentFullTime,
		WorkplaceTypes:   model.WorkplaceHybrid,
		ApplicationRequirement: model.ApplicationRequirement{
			Name: true, Email: true, Linkedin: true, PortfolioWorkSample: true,
		},
	},
	{
		JobTitle:         "DevOps Engineer",
		JobDescription:   "We are seeking a DevOps Engineer to build and maintain our CI/CD pipelines, manage cloud infrastructure, and ensure high availability across all environments. You will work closely with the engineering team to automate deployments and improve developer productivity.",
		TeamDept:         "Infrastructure",
		Location:         "Remote",
		JobType:          "Full-Time",
		YrsOfExp:         "3+",
		CompanyOverview:  companyOverview,
		Qualifications:   "3+ years in DevOps/SRE roles, experience with Docker/Kubernetes, Terraform or Pulumi, AWS or GCP, monitoring tools (Datadog, Grafana), scripting (Bash, Python).",
		Deadline:         "2026-05-01",
		EmploymentStatus: model.EmploymentFullTime,
		WorkplaceTypes:   model.WorkplaceRemote,
		ApplicationRequirement: model.ApplicationRequirement{
			Name: true, Email: true, Mobile: true,
		},
	},
	{
		JobTitle:         "Technical Recruiter (Part-Time)",
		JobDescription:   "We are hiring a part-time Technical Recruiter to source, screen, and coordinate interviews for engineering and design roles. You will partner with hiring managers to understand role requirements and build a diverse talent pipeline.",
		TeamDept:         "People Operations",
		Location:         "San Francisco, CA",
		JobType:          "Part-Time",
		YrsOfExp:         "2+",
		CompanyOverview:  companyOverview,
		Qualifications:   "2+ years of technical recruiting experience, familiarity with ATS tools, strong sourcing skills (LinkedIn Recruiter, GitHub), excellent interpersonal skills, ability to manage multiple requisitions.",
		Deadline:         "2026-03-30",
		EmploymentStatus: model.EmploymentPartTime,
		WorkplaceTypes:   model.WorkplaceOnSite,
		ApplicationRequirement: model.ApplicationRequirement{
			Name: true, Email: true, Mobile: true, Linkedin: true,
		},
	},
}

// jobAuthors maps Jobs to Users: two, two, one.
var jobAuthors = []int{0, 0, 1, 1, 2}

func applicant(name, email, mobile, linkedin, years, portfolio string) model.Application {
	return model.Application{
		Name:                name,
		Email:               email,
		Mobile:              mobile,
		Linkedin:            linkedin,
		Resume:              resumeURL,
		Passport:            passportURL,
		CoverLetter:         coverLetterURL,
		YearsOfExperience:   years,
		PortfolioWorkSample: portfolio,
	}
}

// Applicants apply to the jobs listed in placements.
var Applicants = []model.Application{
	applicant("Alex Johnson", "alex.johnson@example.com", "+1-415-555-0101", "https://linkedin.com/in/alexjohnson", "6", "https://alexjohnson.dev"),
	applicant("Priya Sharma", "priya.sharma@example.com", "+1-212-555-0102", "https://linkedin.com/in/priyasharma", "4", "https://priyasharma.design"),
	applicant("David Kim", "david.kim@example.com", "+1-512-555-0103", "https://linkedin.com/in/davidkim", "7", "https://davidkim.io"),
	applicant("Emily Rodriguez", "emily.rodriguez@example.com", "+1-303-555-0104", "https://linkedin.com/in/emilyrodriguez", "3", ""),
	applicant("Michael Brown", "michael.brown@example.com", "+1-206-555-0105", "https://linkedin.com/in/michaelbrown", "5", ""),
	applicant("Olivia Martinez", "olivia.martinez@example.com", "+1-617-555-0106", "https://linkedin.com/in/oliviamartinez", "2", "https://oliviamartinez.com"),
	applicant("Liam Nguyen", "liam.nguyen@example.com", "+1-408-555-0107", "https://linkedin.com/in/liamnguyen", "8", ""),
	applicant("Sophia Patel", "sophia.patel@example.com", "+1-310-555-0108", "https://linkedin.com/in/sophiapatel", "5", "https://sophiapatel.design"),
	applicant("Ethan Wilson", "ethan.wilson@example.com", "+1-773-555-0109", "https://linkedin.com/in/ethanwilson", "4", ""),
	applicant("Ava Thompson", "ava.thompson@example.com", "+1-503-555-0110", "https://linkedin.com/in/avathompson", "6", "https://avathompson.dev"),
	applicant("Noah Davis", "noah.davis@example.com", "+1-469-555-0111", "https://linkedin.com/in/noahdavis", "3", ""),
	applicant("Isabella Lee", "isabella.lee@example.com", "+1-650-555-0112", "https://linkedin.com/in/isabellalee", "9", "https://isabellalee.io"),
}

type placement struct {
	applicant int
	job       int
}

// placements puts two or three applicants on every job.
var placements = []placement{
	{0, 0}, {2, 0}, {9, 0},
	{3, 1}, {6, 1}, {10, 1},
	{1, 2}, {7, 2},
	{4, 3}, {8, 3},
	{5, 4}, {11, 4},
}

// CommentTemplates are handed out in rotation.
var CommentTemplates = []string{
	"Strong candidate. Technical skills align well with the role requirements.",
	"Good cultural fit. Communication skills stood out during the initial screen.",
	"Resume is impressive but lacks specific experience with our tech stack. Worth a follow-up.",
	"Portfolio work is excellent. Recommend moving to the next round.",
	"Years of experience are a bit below our target, but showed strong potential.",
	"Great problem-solving approach in the take-home assessment.",
	"References check out well. Previous managers gave glowing feedback.",
	"Needs improvement in system design, but strong in hands-on coding.",
	"Excellent leadership experience. Could grow into a team lead role.",
	"Salary expectations are within our range. Recommend extending an offer.",
}

type booking struct {
	placement   int
	daysFromNow int
}

// bookings interview the first applicant of every job.
var bookings = []booking{
	{0, 3},
	{3, 5},
	{6, 2},
	{8, 7},
	{10, 4},
}
