package service

import (
	"fmt"
	"strings"

	"skillpath_backend/internal/model"
)

func profileBlock(p model.Profile) string {
	return fmt.Sprintf(`- Username: %s
- Role: %s (Student/Professional)
- Current Stage: %s
- Field of Study/Job Role: %s
- End Goal: %s`, p.Username, p.Role, p.CurrentStage, p.FieldInfo, p.EndGoal)
}

func buildRoadmapPrompt(p model.Profile) string {
	return fmt.Sprintf(`Create a detailed learning roadmap in JSON format for a user with the following profile:
%s

The roadmap should include 4 phases, with each phase containing milestones, descriptions, timelines, and resources. Please format the response strictly in this JSON structure:
{
    "roadmap": {
        "phases": [
            {
                "name": "Phase 1: Beginner",
                "milestones": [
                    {
                        "name": "Milestone 1.1",
                        "description": "Learn basic concepts.",
                        "timeline": "2 weeks",
                        "resources": [ "Resource 1", "Resource 2" ]
                    }
                ]
            },
            {
                "name": "Phase 2: Intermediate",
                "milestones": [
                    {
                        "name": "Milestone 2.1",
                        "description": "Learn intermediate concepts.",
                        "timeline": "3 weeks",
                        "resources": [ "Resource 1", "Resource 2" ]
                    }
                ]
            },
            {
                "name": "Phase 3: Advanced",
                "milestones": [
                    {
                        "name": "Milestone 3.1",
                        "description": "Master advanced topics.",
                        "timeline": "4 weeks",
                        "resources": [ "Resource 1", "Resource 2" ]
                    }
                ]
            },
            {
                "name": "Phase 4: Final",
                "milestones": [
                    {
                        "name": "Milestone 4.1",
                        "description": "Apply your knowledge to a real-world project.",
                        "timeline": "4 weeks",
                        "resources": [ "Resource 1", "Resource 2" ]
                    }
                ]
            }
        ]
    }
}`, profileBlock(p))
}

func buildQuizPrompt(p model.Profile, phase string) string {
	return fmt.Sprintf(`Generate a 10-question quiz in JSON format for the phase: %s of the following user:
%s

Please include multiple-choice, true/false, and short-answer questions. Format the response strictly in this JSON structure:
{
    "quiz": [
        {
            "question": "What is ...?",
            "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
            "answer": "Option 1"
        },
        {
            "question": "True or False: ...?",
            "answer": "True"
        },
        {
            "question": "Explain ... in a few sentences.",
            "answer": "..."
        }
    ]
}`, phase, profileBlock(p))
}

func buildGapAnalysisPrompt(p model.Profile, wrongAnswers []WrongAnswer) string {
	var sb strings.Builder
	for _, wa := range wrongAnswers {
		fmt.Fprintf(&sb, "- Question: %s | Expected: %s | Given: %s\n", wa.Question, wa.Expected, wa.Given)
	}

	return fmt.Sprintf(`Provide a detailed gap analysis and feedback in JSON format based on these wrong answers:
%s
for the user with the following profile:
%s

Format:
{
    "gap_analysis": {
        "recommendations": [
            "Revise concept X",
            "Take course Y",
            "Watch tutorial Z"
        ]
    }
}`, sb.String(), profileBlock(p))
}
