// Package prompts builds the model-facing prompt text. Everything here is
// pure formatting; the section markers ("Expert:", "Feedback to Specialist
// Experts:", "Feedback to Diagnostic Specialist:") are part of the wire
// behavior the consensus loop parses.
package prompts

import "fmt"

// Description asks the vision model for an initial medical scene graph in
// JSON form, focused on the question.
func Description(question string) string {
	return fmt.Sprintf(
		"As a medical assistant specialized in generating detailed Medical Scene Graphs based on questions and images,\n"+
			"your task is to carefully analyze the provided image and generate a Medical Scene Graph in JSON format that is highly relevant to the following question: %q. Your analysis should focus on:\n\n"+
			"1. **Identifying Medical Entities**:\n"+
			"- Represent each medical entity pertinent to the question as an object with a unique `id`, a `type` (e.g., anatomical structure, lesion, medical device, imaging modality), and a set of `attributes` describing diagnostically relevant features such as size, shape, location, intensity and texture.\n\n"+
			"2. **Specifying Entity Relationships**:\n"+
			"- Define meaningful relationships between objects, each with a `subject` (object id), a `predicate` (e.g., is_portrayed_on, may_indicate, adjacent_to, inside, connected_by, supplied_by) and an `object` (object id).\n\n"+
			"3. **Including Relevant Medical Conditions or Diagnoses**:\n"+
			"- Link relevant conditions to the identified entities, each with an `id`, a `type` and a brief `description`.\n\n"+
			"4. **Highlighting Question Focus**:\n"+
			"- List the ids of the objects, relationships or conditions that directly address the focus of the question.\n\n"+
			"The JSON structure should follow this template:\n"+
			"```json\n"+
			"{\n"+
			"  \"objects\": [...],\n"+
			"  \"relationships\": [...],\n"+
			"  \"conditions\": [...],\n"+
			"  \"question_focus\": [\"focus_entity_or_relationship_ids\"]\n"+
			"}\n"+
			"```\n\n"+
			"Ensure your output aligns closely with the specifics of the question and the medical domain knowledge required to interpret the image accurately.",
		question)
}

// Refinement asks the language model to correct a scene graph against
// retrieved knowledge.
func Refinement(initialSceneGraph, retrievedKnowledge string) string {
	return fmt.Sprintf(
		"You are a medical expert tasked with refining a medical scene graph using professional medical knowledge from established databases.\n\n"+
			"**Initial Scene Graph:**\n%s\n\n"+
			"**Retrieved Medical Knowledge from RadGraph and TCGA-Reports:**\n%s\n\n"+
			"Please carefully review the initial scene graph and refine it based on the retrieved professional medical knowledge. Your refinement should:\n\n"+
			"1. **Verify Entity Definitions**: Check that the entities are correctly defined according to the professional medical knowledge.\n"+
			"2. **Correct Entity Types**: Ensure entity types match standard medical terminology from the knowledge base.\n"+
			"3. **Validate Relationships**: Verify that the relationships between entities are medically accurate.\n"+
			"4. **Add Missing Information**: Include relevant entities or relationships supported by the knowledge base but missing from the initial scene graph.\n"+
			"5. **Remove Incorrect Information**: Eliminate entities or relationships that contradict the professional medical knowledge.\n"+
			"6. **Enhance Attributes**: Update or add attributes based on standard medical descriptions from the knowledge base.\n\n"+
			"Output the refined scene graph in the same JSON format as the initial scene graph, ensuring all modifications are grounded in the retrieved medical knowledge.\n"+
			"Include a brief explanation of major changes made at the end of your response.",
		initialSceneGraph, retrievedKnowledge)
}

// Consultation asks a simulated general practitioner to assemble a panel of
// specialists with per-specialist tasks.
func Consultation(question, description string) string {
	return fmt.Sprintf(
		"You are a professional and experienced general practitioner. Please consider the following question to be addressed and its corresponding medical scenario and recommend several experts in different medical specialties to better answer the question accurately.\n\n"+
			"For each of the recommended experts, provide:\n"+
			"- The expert's area of specialization.\n"+
			"- The specific expertise, skills, and knowledge that the expert brings to solving the problem.\n"+
			"When an expert is required, specify your request as: 'Expert: <specific task or information to extract>.'\n"+
			"Repeat this format for each Expert.\n\n"+
			"Provide a rationale for your approach to answering the question, then assign specific tasks to each expert based on their abilities and the question to be answered.\n\n"+
			"Your answer should be organized as follows:\n\n"+
			"Answer: [Rationale: Explain your plan to interpret the question and how each expert's expertise will contribute to a comprehensive answer.]\n\n"+
			"experts_tasks:\n\n"+
			"Expert: [Clearly list in detail the tasks that need to be completed by this expert.]\n"+
			"If there are other Experts, the output format is similar.\n\n"+
			"Please refer to the prompts and examples above to help me solve the following problem: %s\n"+
			"Here is a medical scene graph of the related medical image: %s",
		question, description)
}

// Opinions asks the panel to answer the question, one section per expert.
func Opinions(question, description, expertsTasks string) string {
	return fmt.Sprintf(
		"You are part of a team of medical experts who are good at answering medical questions; you have been assigned the specific task of solving the following problem.\n\n"+
			"Question: %s\n"+
			"Medical Scene Graph: %s\n"+
			"Experts and their assigned tasks:\n%s\n\n"+
			"Please re-analyze the image carefully and give your answer and the reasons to support it, making full use of your expertise according to the task undertaken.\n"+
			"Your answers should be organized as follows:\n"+
			"Expert (Area of specialization):\n"+
			"Reasoning and Answers: <Think through the problem step by step, give an answer to the question, and provide 2-3 sentences of reasoning to support the answer.>\n"+
			"If there are other Experts, the output format is similar.\n",
		question, description, expertsTasks)
}

// Diagnosis asks the diagnostic expert to synthesize the panel's opinions.
func Diagnosis(question, description, expertsOpinions string) string {
	return fmt.Sprintf(
		"You are a professional and experienced medical diagnostic expert who is good at summarizing and synthesizing the opinions of multiple experts from different fields.\n\n"+
			"Below are some reports from experts in different medical fields.\n\n%s\n\n"+
			"You need to complete the following steps:\n"+
			"1. Consider the reports carefully and comprehensively.\n"+
			"2. Extract key knowledge from the reports.\n"+
			"3. Based on the knowledge, think again in combination with the problem and come up with a comprehensive and summary analysis.\n\n"+
			"You should output in exactly the same format:\n"+
			"Key knowledge: <key knowledge>\n"+
			"Overall analysis: <overall analysis>\n\n"+
			"Question: %s\n"+
			"Medical Scene Graph: %s\n"+
			"Please provide your reasoning process, detailed reasons for your answer, and preliminary conclusion based on the information provided.",
		expertsOpinions, question, description)
}

// reviewContract describes the structured verdict a reviewer may emit in
// place of the prose sections; the loop accepts either.
const reviewContract = "You may answer with a single JSON object " +
	`{"converged": <bool>, "specialist_feedback": "<text>", "diagnostic_feedback": "<text>"}` +
	" instead of the prose sections below.\n"

// Evaluation asks the review expert to critique the diagnosis against the
// panel's opinions (first review pass).
func Evaluation(question, description, diagnosis, expertsOpinions string) string {
	return fmt.Sprintf(
		"You are an experienced and professional medical reviewer who excels at reviewing the reasoning process of medical problems.\n"+
			"Your task is to analyze and critique the reasoning process of the diagnostic specialist.\n"+
			"If you find that the diagnostic expert's answer is inconsistent or in disagreement with a specialist's answer, ask the specialist to rethink, then ask the diagnostic specialist to update their reasoning based on the updated opinions.\n\n"+
			"Question: %s\n"+
			"Medical Scene Graph: %s\n"+
			"Diagnostic Specialist's Reasoning:\n%s\n"+
			"Specialist Experts' Opinions:\n%s\n\n"+
			reviewContract+
			"Otherwise your response should be organized as follows:\n"+
			"Review Analysis:\n"+
			"<Your detailed analysis here>\n"+
			"Feedback to Specialist Experts:\n"+
			"<If applicable, provide feedback to specific Specialist Experts here, requesting them to rethink and provide updated reasoning in two sentences.>\n"+
			"Feedback to Diagnostic Specialist:\n"+
			"<Provide feedback to the Diagnostic Specialist to rethink and update their reasoning based on the new information.>\n"+
			"If no feedback is necessary, state that all opinions are consistent.\n",
		question, description, diagnosis, expertsOpinions)
}

// EvaluationFollowup is the review prompt for passes after the first, fed
// with the updated opinions.
func EvaluationFollowup(question, description, expertsOpinions, diagnosis string) string {
	return fmt.Sprintf(
		"You are an experienced and professional medical reviewer who excels at reviewing the reasoning process of medical problems.\n"+
			"Based on the updated opinions from the Specialist Experts, please analyze the Diagnostic Specialist's reasoning and provide feedback to ensure consistency and accuracy.\n"+
			"If inconsistencies still exist, continue the iterative process of feedback and reassessment.\n\n"+
			"Question: %s\n"+
			"Medical Scene Graph: %s\n"+
			"Diagnostic Specialist's Updated Reasoning:\n%s\n"+
			"Updated Specialist Experts' Opinions:\n%s\n\n"+
			reviewContract+
			"Otherwise your response should be organized as follows:\n"+
			"Review Analysis:\n"+
			"<Your detailed analysis here>\n"+
			"Feedback to Specialist Experts:\n"+
			"<If applicable, provide feedback to specific Specialist Experts here.>\n"+
			"Feedback to Diagnostic Specialist:\n"+
			"<Provide feedback to the Diagnostic Specialist to rethink and update their reasoning and answers based on the updated specialists' opinions.>\n"+
			"If no further feedback is necessary, state that all opinions are consistent.\n",
		question, description, diagnosis, expertsOpinions)
}

// SpecialistRethink asks one specialist to revise their opinion given the
// reviewer's feedback.
func SpecialistRethink(question, description, feedback string) string {
	return fmt.Sprintf(
		"As a Specialist Expert, you have received feedback from the Review Expert regarding your previous analysis.\n"+
			"Please carefully consider the feedback, re-evaluate your reasoning and conclusions, and provide an updated opinion that fully addresses the points raised.\n\n"+
			"Question: %s\n"+
			"Medical Scene Graph: %s\n"+
			"Review Expert's Feedback:\n%s\n\n"+
			"Please provide your updated reasoning and answers, organized as follows:\n"+
			"Updated Reasoning and Answers:\n"+
			"<Your updated analysis here>\n",
		question, description, feedback)
}

// DiagnosticReassessment asks the diagnostic expert to re-synthesize after
// specialists updated their opinions.
func DiagnosticReassessment(question, description, expertsOpinions string) string {
	return fmt.Sprintf(
		"As a professional and experienced medical diagnostic expert, you have received updated opinions from the Specialist Experts based on feedback from the Review Expert.\n"+
			"Please re-evaluate the updated opinions, consider all the information carefully, and provide an updated analysis and conclusion.\n\n"+
			"Question: %s\n"+
			"Medical Scene Graph: %s\n"+
			"Updated Specialist Experts' Opinions:\n%s\n\n"+
			"Please provide your updated reasoning and conclusions, organized as follows:\n"+
			"Updated Diagnostic Reasoning:\n"+
			"<Your updated analysis here>\n",
		question, description, expertsOpinions)
}

// Integration asks for the final answer from the accumulated opinions.
func Integration(question, description, expertOpinions string) string {
	return fmt.Sprintf(
		"You are a knowledgeable and skilled information integration medical expert. Please carefully consider all the experts' opinions provided, including those from the specialists, diagnostic expert, and review expert.\n"+
			"Please gradually think and answer the question based on the given question and experts' opinions.\n"+
			"Please note that we not only need answers, but more importantly, we need rationales for obtaining answers.\n"+
			"Please prioritize using your knowledge to answer questions, and do not rely solely on supplementary information, as it may not always be effective.\n"+
			"Please do not answer with uncertainty; try your best to give an answer.\n"+
			"This is the question that needs to be answered: %s\n"+
			"This is the refined medical scene graph of the related medical image: %s\n"+
			"These are the opinions and reasoning of the experts:\n%s\n"+
			"The expected response format is as follows:\nInterpretation: <interpretation>\nAnswer: <answer>.\n",
		question, description, expertOpinions)
}
