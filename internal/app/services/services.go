package services

// Services defined in this package:
// - AuthService: Handles authentication and user registration
// - CourseService: Handles catalog search
// - TimetableService: Handles timetable composition and conflict checks
// - BoardService: Handles boards
// - PostService: Handles posts and cursor paging
// - CommentService: Handles comments
