package analyses

import (
	"fmt"
	"strings"
)

const guideline2025 = `
### 2025 학교생활기록부 세부능력 및 특기사항 전수검토 가이드라인

당신은 2025학년도 교육부 훈령 제530호를 완벽히 숙지한 생기부 전문 검토 AI입니다.

#### 절대 금지 사항 (발견 시 즉시 지적):
1. **대학명**: 서울대, 연세대, 고려대, KAIST 등 모든 대학/전문대/대학원 명칭 및 변형 표현
2. **기관명**: 교육관련기관 외 모든 기관/단체/회사/재단/협회/학회/연구소 (예외: 교육부, 시도교육청만 허용)
3. **상호명**: 학원, 출판사, 기업, 앱, 플랫폼 (예: △△학원, EBS, 메가스터디)
4. **강사/인물명**: 특정인 실명 (예: ○○ 강사, △△ 교수)
5. **공인어학시험**: TOEIC, TOEFL, HSK, JLPT, IELTS, OPIc 등 모든 시험명 및 점수/급수
6. **인증시험**: 컴퓨터활용능력, 한자급수, 바리스타 등 모든 인증 및 급수
7. **모의고사 성적**: 등급, 백분위, 표준점수 등 모든 정량 지표
8. **대회 용어**: 교외대회 참가/수상, '대회' 단어 사용 자체 금지
9. **교외상/교외대회**: 학교 밖 모든 시상, 대회, 경연, 올림피아드
10. **온라인 플랫폼**: K-MOOC, MOOC, Coursera, edX, 유튜브 강의
11. **특허/논문/출판**: 특허출원, 논문게재, 도서출간, 저작권 등록
12. **사교육 유발 요소**: 장학금, 교외 멘토링, 캠프/워크숍, 해외연수

#### 주의 사항 (개선 권고):
1. **정량성적 오기재**: 점수, 등급, 석차 등 숫자 지표 (성적 미산출 과목 제외)
2. **단순 나열**: "~했다", "~참여함" 반복만으로 구체적 관찰 근거 없음
3. **모호한 칭찬**: "성실하고 적극적", "열심히 함" 등 근거 부족 표현
4. **미래 전망 추측**: "~할 것으로 예상", "~에 적합할 것" 등 추정성 문구
5. **교과 무관 내용**: 해당 교과 성취기준과 무관한 일반적 태도 서술
6. **인용문 내부 금지**: 도서 인용 시 출판사명, 저자명 포함 금지
`

const koreanUniversityTiers = `
### 한국 대학 계층 구조 (2025학년도 기준)

**최상위권 (상위 1-5%)**
- 서울대학교, 연세대학교, 고려대학교, KAIST, 포항공대

**상위권 (상위 6-15%)**
- 성균관대, 한양대, 서강대, 중앙대, 경희대, 한국외대, 서울시립대

**중상위권 (상위 16-30%)**
- 건국대, 동국대, 홍익대, 숙명여대, 국민대, 숭실대, 세종대

**중위권 (상위 31-50%)**
- 단국대, 광운대, 명지대, 상명대, 가천대, 아주대, 인하대

**지방 거점 국립대 (상위 20-35%)**
- 부산대, 경북대, 전남대, 전북대, 충남대, 충북대, 강원대
`

func buildAnalysisPrompt(text, careerDirection string) string {
	return fmt.Sprintf(`%s

#### 분석 대상:
**학생 진로 방향**: %s

**생기부 텍스트**:
`+"```"+`
%s
`+"```"+`

#### 분석 요청사항:
위 가이드라인을 철저히 적용하여 생기부 텍스트를 정밀 분석하고, 다음 JSON 형식으로 응답하세요:

`+"```json"+`
{
  "overallScore": 0-100 사이의 점수 (금지사항 발견 시 대폭 감점),
  "studentProfile": "학생의 전문성과 특징을 한 문장으로 요약 (진로 연계)",
  "careerAlignment": {
    "percentage": 0-100,
    "summary": "진로 방향과의 연계성 평가 (2-3문장)"
  },
  "errors": [
    {
      "type": "금지" 또는 "주의",
      "content": "문제가 되는 원문을 정확히 인용",
      "reason": "위반 사유를 구체적으로 설명 (가이드라인 항목 번호 명시)",
      "page": 페이지 번호 (알 수 없으면 1),
      "suggestion": "구체적이고 실행 가능한 수정 방안 제시"
    }
  ],
  "strengths": [
    "발견된 강점을 구체적으로 설명 (진로 연계, 활동의 심화성, 지속성 등)",
    "최소 3개, 각각 1-2문장으로 상세 작성"
  ],
  "improvements": [
    "개선이 필요한 부분을 구체적으로 설명",
    "최소 3개, 각각 1-2문장으로 상세 작성"
  ],
  "suggestions": [
    "실행 가능한 구체적 개선 제안 (예: 진로 연계 활동 추가, 독서 심화 등)",
    "최소 3개"
  ]
}
`+"```"+`

**중요**:
- errors 배열은 실제로 발견된 금지/주의 사항만 포함
- 금지사항 1개 발견 시 overallScore에서 -15점, 주의사항 1개당 -5점
- 모든 항목은 한국어로 명확하고 구체적으로 작성
- JSON 형식을 정확히 준수 (중괄호, 따옴표, 쉼표 확인)`,
		guideline2025, fallbackString(careerDirection, defaultCareerDirection), text)
}

func buildUniversityPrompt(analysis AnalysisResult, careerDirection string) string {
	return fmt.Sprintf(`당신은 한국 대학 입학 전문가입니다. 학생의 생기부 분석 결과를 바탕으로 지원 가능한 대학을 정밀하게 예측하세요.

%s

### 학생 정보:
**진로 방향**: %s
**생기부 종합 점수**: %d/100
**학생 프로필**: %s
**주요 강점**: %s
**개선 필요 사항**: %s

### 분석 요청:
위 정보를 바탕으로 학생이 지원 가능한 대학을 예측하고, 다음 JSON 형식으로 응답하세요:

`+"```json"+`
{
  "nationalPercentile": 1-100 사이의 백분위 (낮을수록 상위권),
  "academicLevel": "최상위권", "상위권", "중상위권", "중위권", "중하위권" 중 하나,
  "reachableUniversities": [
    {
      "tier": "계층명 (예: 최상위권, 상위권 대학 등)",
      "universities": ["대학명1", "대학명2", "대학명3"],
      "probability": "도전", "적정", "안정" 중 하나
    }
  ],
  "strengthAnalysis": "학생의 강점을 진로와 연계하여 2-3문장으로 분석",
  "improvementNeeded": "보완이 필요한 부분을 구체적으로 2-3문장으로 설명",
  "recommendations": [
    "실행 가능한 구체적 조언 1",
    "실행 가능한 구체적 조언 2",
    "실행 가능한 구체적 조언 3"
  ]
}
`+"```"+`

**중요 지침**:
- nationalPercentile은 점수를 기반으로 정확히 계산 (90점 이상: 1-10%%, 80-89점: 11-25%%, 70-79점: 26-40%%, 60-69점: 41-60%%)
- reachableUniversities는 최소 2개, 최대 4개 계층 포함
- 각 계층마다 2-3개 대학 추천
- 진로 방향과 대학의 특성을 고려한 현실적 추천
- 모든 텍스트는 한국어로 명확하고 구체적으로 작성
- JSON 형식을 정확히 준수`,
		koreanUniversityTiers,
		fallbackString(careerDirection, defaultCareerDirection),
		analysis.OverallScore,
		fallbackString(analysis.StudentProfile, "정보 없음"),
		joinFirst(analysis.Strengths, 3, "정보 없음"),
		joinFirst(analysis.Improvements, 3, "정보 없음"))
}

func buildProjectPrompt(analysis AnalysisResult, careerDirection string) string {
	return fmt.Sprintf(`당신은 한국 고등학생을 위한 자율 과제 추천 전문가입니다. 학생의 생기부 분석 결과를 바탕으로 맞춤형 프로젝트를 추천하세요.

### 학생 정보:
**진로 방향**: %s
**생기부 종합 점수**: %d/100
**학생 프로필**: %s
**주요 강점**: %s
**개선 필요 사항**: %s

### 추천 요청:
학생의 진로와 역량에 맞는 자율 과제를 추천하고, 다음 JSON 형식으로 응답하세요:

`+"```json"+`
{
  "career": "진로 분야 요약",
  "bestProject": {
    "title": "가장 추천하는 프로젝트 제목",
    "description": "프로젝트 상세 설명 (2-3문장)",
    "reason": "이 프로젝트를 추천하는 이유 (학생의 강점과 연계)",
    "difficulty": "하", "중", "중상", "상" 중 하나,
    "duration": "예상 소요 기간 (예: 1-2개월)",
    "benefits": ["기대 효과 1", "기대 효과 2", "기대 효과 3"]
  },
  "projects": [
    {
      "title": "추가 프로젝트",
      "description": "프로젝트 설명",
      "reason": "추천 이유",
      "difficulty": "난이도",
      "duration": "소요 기간",
      "benefits": ["효과1", "효과2"]
    }
  ],
  "tips": [
    "프로젝트 수행 시 실용적 조언 1",
    "프로젝트 수행 시 실용적 조언 2",
    "프로젝트 수행 시 실용적 조언 3"
  ]
}
`+"```"+`

**중요 지침**:
- 프로젝트는 고등학생이 학교에서 실제로 수행 가능해야 함
- 진로와의 명확한 연계성 제시
- 구체적이고 실행 가능한 프로젝트 제안
- 교과 활동 또는 창의적 체험활동으로 기록 가능한 내용
- 교외 대회, 사교육 관련 내용 절대 포함 금지
- 모든 텍스트는 한국어로 명확하고 구체적으로 작성
- JSON 형식을 정확히 준수`,
		fallbackString(careerDirection, defaultCareerDirection),
		analysis.OverallScore,
		fallbackString(analysis.StudentProfile, "정보 없음"),
		joinFirst(analysis.Strengths, 3, "정보 없음"),
		joinFirst(analysis.Improvements, 3, "정보 없음"))
}

func buildDetectPrompt(text string) string {
	var b strings.Builder
	b.WriteString(`당신은 학교생활기록부 문장 분석 전문가입니다. 아래 생기부 텍스트가 생성형 AI로 작성되었을 가능성을 평가하세요.

**생기부 텍스트**:
` + "```" + `
`)
	b.WriteString(text)
	b.WriteString(`
` + "```" + `

다음 JSON 형식으로 응답하세요:

` + "```json" + `
{
  "overallAIProbability": 0-100 사이의 확률,
  "riskAssessment": "안전", "주의", "위험" 중 하나,
  "detectedSections": [
    {
      "section": "의심되는 원문 인용",
      "aiProbability": 0-100,
      "reason": "AI 작성으로 의심되는 근거"
    }
  ],
  "recommendations": [
    "실행 가능한 구체적 조언 1",
    "실행 가능한 구체적 조언 2"
  ]
}
` + "```" + `

**중요 지침**:
- 반복적 문형, 과도하게 매끄러운 연결, 구체적 관찰 근거 부재를 중점 평가
- 모든 텍스트는 한국어로 명확하고 구체적으로 작성
- JSON 형식을 정확히 준수`)
	return b.String()
}
