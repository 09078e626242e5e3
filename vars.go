package pcre2

var (
	// pcre2_compile_8 signature:
	//   pcre2_code *pcre2_compile_8(PCRE2_SPTR pattern, PCRE2_SIZE length,
	//       uint32_t options, int *errorcode, PCRE2_SIZE *erroroffset,
	//       pcre2_compile_context *ccontext);
	pcre2_compile func(pattern *uint8, length uint64, options uint32, errorcode *int32, erroroffset *uint64, compileContext uintptr) uintptr

	// pcre2_code_free_8: void pcre2_code_free_8(pcre2_code *code);
	pcre2_code_free func(code uintptr)

	// pcre2_jit_compile_8: int pcre2_jit_compile_8(pcre2_code *code,
	//    uint32_t options);
	pcre2_jit_compile func(code uintptr, options uint32) int32

	// pcre2_pattern_info_8: int pcre2_pattern_info_8(const pcre2_code *code,
	//    uint32_t what, void *where);
	pcre2_pattern_info func(code uintptr, what uint32, where uintptr) int32

	// pcre2_match_8: int pcre2_match_8(const pcre2_code *code,
	//    PCRE2_SPTR subject, PCRE2_SIZE length, PCRE2_SIZE startoffset,
	//    uint32_t options, pcre2_match_data *match_data,
	//    pcre2_match_context *mcontext);
	pcre2_match func(code uintptr, subject *uint8, length uint64, startoffset uint64, options uint32, matchData uintptr, matchContext uintptr) int32

	// pcre2_match_data_create_from_pattern_8:
	//    pcre2_match_data *pcre2_match_data_create_from_pattern_8(
	//        const pcre2_code *code, pcre2_general_context *gcontext);
	pcre2_match_data_create_from_pattern func(code uintptr, generalContext uintptr) uintptr

	// pcre2_match_data_free_8:
	//    void pcre2_match_data_free_8(pcre2_match_data *match_data);
	pcre2_match_data_free func(matchData uintptr)

	// pcre2_get_ovector_pointer_8:
	//    PCRE2_SIZE *pcre2_get_ovector_pointer_8(pcre2_match_data *match_data);
	pcre2_get_ovector_pointer func(matchData uintptr) *uint64

	// pcre2_get_ovector_count_8:
	//    uint32_t pcre2_get_ovector_count_8(pcre2_match_data *match_data);
	pcre2_get_ovector_count func(matchData uintptr) uint32

	// pcre2_match_context_create_8:
	//    pcre2_match_context *pcre2_match_context_create_8(
	//        pcre2_general_context *gcontext);
	pcre2_match_context_create func(generalContext uintptr) uintptr

	// pcre2_match_context_free_8:
	//    void pcre2_match_context_free_8(pcre2_match_context *mcontext);
	pcre2_match_context_free func(matchContext uintptr)

	// pcre2_set_match_limit_8: int pcre2_set_match_limit_8(
	//    pcre2_match_context *mcontext, uint32_t value);
	pcre2_set_match_limit func(matchContext uintptr, value uint32) int32

	// pcre2_set_depth_limit_8: int pcre2_set_depth_limit_8(
	//    pcre2_match_context *mcontext, uint32_t value);
	pcre2_set_depth_limit func(matchContext uintptr, value uint32) int32

	// pcre2_set_heap_limit_8: int pcre2_set_heap_limit_8(
	//    pcre2_match_context *mcontext, uint32_t value);
	pcre2_set_heap_limit func(matchContext uintptr, value uint32) int32

	// pcre2_compile_context_create_8:
	//    pcre2_compile_context *pcre2_compile_context_create_8(
	//        pcre2_general_context *gcontext);
	pcre2_compile_context_create func(generalContext uintptr) uintptr

	// pcre2_compile_context_free_8:
	//    void pcre2_compile_context_free_8(pcre2_compile_context *ccontext);
	pcre2_compile_context_free func(compileContext uintptr)

	// pcre2_set_newline_8: int pcre2_set_newline_8(
	//    pcre2_compile_context *ccontext, uint32_t value);
	pcre2_set_newline func(compileContext uintptr, value uint32) int32

	// pcre2_get_error_message_8: int pcre2_get_error_message_8(int errorcode,
	//    PCRE2_UCHAR *buffer, PCRE2_SIZE bufflen);
	pcre2_get_error_message func(errorcode int32, buffer *uint8, bufflen uint64) int32
)
